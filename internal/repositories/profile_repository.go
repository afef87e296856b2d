package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

type ProfileRepository interface {
	CreateStudent(profile *models.StudentProfile) error
	CreateFaculty(profile *models.FacultyProfile) error
	CreateAdmin(profile *models.AdminProfile) error

	FindStudentByUserID(userID string) (*models.StudentProfile, error)
	FindFacultyByUserID(userID string) (*models.FacultyProfile, error)
	FindFacultyByID(id string) (*models.FacultyProfile, error)
	FindStudentByMIS(mis string) (*models.StudentProfile, error)
	FindMISIn(mis []string) (map[string]struct{}, error)

	// CreateStudentAccounts inserts users with their student profiles
	// in a single transaction. Used by the bulk import.
	CreateStudentAccounts(users []*models.User, profiles []*models.StudentProfile) error

	ListFaculty(approved *bool) ([]models.FacultyProfile, error)
	ApproveFaculty(id string) (*models.FacultyProfile, error)
	CountFaculty(approved *bool) (int64, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) CreateStudent(profile *models.StudentProfile) error {
	err := r.db.Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMIS
	}
	return err
}

func (r *ProfileRepositoryImpl) CreateFaculty(profile *models.FacultyProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateAdmin(profile *models.AdminProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindStudentByUserID(userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindFacultyByUserID(userID string) (*models.FacultyProfile, error) {
	var profile models.FacultyProfile
	err := r.db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindFacultyByID(id string) (*models.FacultyProfile, error) {
	var profile models.FacultyProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindStudentByMIS(mis string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.Preload("User").First(&profile, "mis = ?", mis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindMISIn returns which of the given MIS numbers are already
// registered. One query regardless of input size.
func (r *ProfileRepositoryImpl) FindMISIn(mis []string) (map[string]struct{}, error) {
	taken := make(map[string]struct{})
	if len(mis) == 0 {
		return taken, nil
	}

	var existing []string
	err := r.db.Model(&models.StudentProfile{}).Where("mis IN ?", mis).Pluck("mis", &existing).Error
	if err != nil {
		return nil, err
	}
	for _, m := range existing {
		taken[m] = struct{}{}
	}
	return taken, nil
}

func (r *ProfileRepositoryImpl) CreateStudentAccounts(users []*models.User, profiles []*models.StudentProfile) error {
	if len(users) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(users).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		if err := tx.Create(profiles).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateMIS
			}
			return err
		}
		return nil
	})
}

func (r *ProfileRepositoryImpl) ListFaculty(approved *bool) ([]models.FacultyProfile, error) {
	var profiles []models.FacultyProfile
	query := r.db.Preload("User").Order("created_at DESC")
	if approved != nil {
		query = query.Where("approved = ?", *approved)
	}
	err := query.Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) ApproveFaculty(id string) (*models.FacultyProfile, error) {
	result := r.db.Model(&models.FacultyProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"approved":   true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var profile models.FacultyProfile
	if err := r.db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) CountFaculty(approved *bool) (int64, error) {
	var count int64
	query := r.db.Model(&models.FacultyProfile{})
	if approved != nil {
		query = query.Where("approved = ?", *approved)
	}
	err := query.Count(&count).Error
	return count, err
}
