package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already taken")
	ErrDuplicateMIS   = errors.New("mis already taken")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	VerifyUser(id string) error
	SetPassword(id string, passwordHash string, changedAt time.Time) error
	SetResetToken(id string, tokenHash string, expires time.Time) error
	Delete(id string) error
	FindByResetTokenHash(tokenHash string) (*models.User, error)
	FindEmailsIn(emails []string) (map[string]struct{}, error)
	CountByRole(role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("StudentProfile").Preload("FacultyProfile").Preload("AdminProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("StudentProfile").Preload("FacultyProfile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepositoryImpl) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// VerifyUser marks the account verified and active and clears the OTP.
func (r *UserRepositoryImpl) VerifyUser(id string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_verified":       true,
		"status":            models.UserStatusActive,
		"email_otp_hash":    "",
		"email_otp_expires": nil,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPassword replaces the password hash and clears any reset token.
// changedAt feeds the stale token check, issued tokens older than it
// stop working.
func (r *UserRepositoryImpl) SetPassword(id string, passwordHash string, changedAt time.Time) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":       passwordHash,
		"password_changed_at": changedAt,
		"reset_token_hash":    "",
		"reset_token_exp":     nil,
		"is_verified":         true,
		"status":              models.UserStatusActive,
		"updated_at":          time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetToken(id string, tokenHash string, expires time.Time) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token_hash": tokenHash,
		"reset_token_exp":  expires,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user row. Profiles go with it via FK cascade.
func (r *UserRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByResetTokenHash(tokenHash string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token_hash = ? AND reset_token_hash != '' AND reset_token_exp > ?", tokenHash, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindEmailsIn returns which of the given emails already exist. One
// query regardless of input size, used by the bulk import.
func (r *UserRepositoryImpl) FindEmailsIn(emails []string) (map[string]struct{}, error) {
	taken := make(map[string]struct{})
	if len(emails) == 0 {
		return taken, nil
	}

	var existing []string
	err := r.db.Model(&models.User{}).Where("email IN ?", emails).Pluck("email", &existing).Error
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		taken[e] = struct{}{}
	}
	return taken, nil
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
