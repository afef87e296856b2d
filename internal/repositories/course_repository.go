package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

var (
	ErrDuplicateCourseCode = errors.New("course code already taken")
	ErrAlreadyEnrolled     = errors.New("student already enrolled")
)

type CourseFilter struct {
	Department  string
	Semester    int
	VisibleOnly bool
}

type CourseRepository interface {
	Create(course *models.Course) error
	FindByID(id string) (*models.Course, error)
	Update(course *models.Course) error
	Delete(id string) error
	List(filter CourseFilter) ([]models.Course, error)
	ListByFaculty(facultyID string) ([]models.Course, error)

	Enroll(courseID, studentID string) error
	IsEnrolled(courseID, studentID string) (bool, error)
	ListEnrolled(studentID string) ([]models.Course, error)
	EnrolledStudents(courseID string) ([]models.StudentProfile, error)
	CountAll() (int64, error)
}

type CourseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

func (r *CourseRepositoryImpl) Create(course *models.Course) error {
	err := r.db.Create(course).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCourseCode
	}
	return err
}

func (r *CourseRepositoryImpl) FindByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Faculty.User").First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepositoryImpl) Update(course *models.Course) error {
	course.UpdatedAt = time.Now()
	return r.db.Save(course).Error
}

func (r *CourseRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Course{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) List(filter CourseFilter) ([]models.Course, error) {
	var courses []models.Course
	query := r.db.Preload("Faculty.User").Order("created_at DESC")
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Semester > 0 {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.VisibleOnly {
		query = query.Where("visibility = ?", true)
	}
	err := query.Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) ListByFaculty(facultyID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("faculty_id = ?", facultyID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) Enroll(courseID, studentID string) error {
	enrolled, err := r.IsEnrolled(courseID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return ErrAlreadyEnrolled
	}

	course := models.Course{BaseModel: models.BaseModel{ID: courseID}}
	student := models.StudentProfile{BaseModel: models.BaseModel{ID: studentID}}
	return r.db.Model(&course).Association("Students").Append(&student)
}

func (r *CourseRepositoryImpl) IsEnrolled(courseID, studentID string) (bool, error) {
	var count int64
	err := r.db.Table("course_students").
		Where("course_id = ? AND student_profile_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepositoryImpl) ListEnrolled(studentID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Preload("Faculty.User").
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.student_profile_id = ?", studentID).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) EnrolledStudents(courseID string) ([]models.StudentProfile, error) {
	var students []models.StudentProfile
	err := r.db.Preload("User").
		Joins("JOIN course_students cs ON cs.student_profile_id = student_profiles.id").
		Where("cs.course_id = ?", courseID).
		Find(&students).Error
	return students, err
}

func (r *CourseRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Count(&count).Error
	return count, err
}
