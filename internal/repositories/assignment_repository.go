package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	FindByID(id string) (*models.Assignment, error)
	Update(assignment *models.Assignment) error
	Delete(id string) error
	ListByCourse(courseID string) ([]models.Assignment, error)

	CreateSubmission(submission *models.Submission) error
	FindSubmissionByID(id string) (*models.Submission, error)
	FindSubmission(assignmentID, userID string) (*models.Submission, error)
	UpdateSubmission(submission *models.Submission) error
	ListSubmissions(assignmentID string) ([]models.Submission, error)
	ListSubmissionsByUser(userID string) ([]models.Submission, error)
}

type AssignmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &AssignmentRepositoryImpl{db: db}
}

func (r *AssignmentRepositoryImpl) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *AssignmentRepositoryImpl) FindByID(id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.Preload("Course").First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepositoryImpl) Update(assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now()
	return r.db.Save(assignment).Error
}

func (r *AssignmentRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssignmentRepositoryImpl) ListByCourse(courseID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("course_id = ?", courseID).Order("due_date ASC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepositoryImpl) CreateSubmission(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

func (r *AssignmentRepositoryImpl) FindSubmissionByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Preload("User").Preload("Assignment").First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *AssignmentRepositoryImpl) FindSubmission(assignmentID, userID string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.First(&submission, "assignment_id = ? AND user_id = ?", assignmentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *AssignmentRepositoryImpl) UpdateSubmission(submission *models.Submission) error {
	submission.UpdatedAt = time.Now()
	return r.db.Save(submission).Error
}

func (r *AssignmentRepositoryImpl) ListSubmissions(assignmentID string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Preload("User").Where("assignment_id = ?", assignmentID).
		Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepositoryImpl) ListSubmissionsByUser(userID string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Preload("Assignment").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}
