package services

import (
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

type CourseService interface {
	Create(facultyUserID string, req *dto.CreateCourseRequest) (*models.Course, error)
	Update(facultyUserID, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error)
	Delete(facultyUserID, courseID string) error
	Get(courseID string) (*models.Course, error)
	List(filter repositories.CourseFilter) ([]models.Course, error)
	ListMine(facultyUserID string) ([]models.Course, error)
	Students(facultyUserID, courseID string) ([]models.StudentProfile, error)

	Enroll(studentUserID, courseID string) error
	ListEnrolled(studentUserID string) ([]models.Course, error)
}

type CourseServiceImpl struct {
	courseRepo  repositories.CourseRepository
	profileRepo repositories.ProfileRepository
}

func NewCourseService(courseRepo repositories.CourseRepository, profileRepo repositories.ProfileRepository) CourseService {
	return &CourseServiceImpl{courseRepo: courseRepo, profileRepo: profileRepo}
}

// approvedFaculty resolves the caller's faculty profile and rejects
// accounts an admin has not approved yet.
func (s *CourseServiceImpl) approvedFaculty(facultyUserID string) (*models.FacultyProfile, error) {
	profile, err := s.profileRepo.FindFacultyByUserID(facultyUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.InternalError(err)
	}
	if !profile.Approved {
		return nil, apperrors.ErrFacultyNotApproved
	}
	return profile, nil
}

func (s *CourseServiceImpl) Create(facultyUserID string, req *dto.CreateCourseRequest) (*models.Course, error) {
	profile, err := s.approvedFaculty(facultyUserID)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		CourseCode:   req.CourseCode,
		Department:   req.Department,
		Semester:     req.Semester,
		Credits:      req.Credits,
		Syllabus:     req.Syllabus,
		Restrictions: req.Restrictions,
		Visibility:   true,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		FacultyID:    profile.ID,
	}
	if course.Credits == 0 {
		course.Credits = 3
	}
	if req.Visibility != nil {
		course.Visibility = *req.Visibility
	}

	if err := s.courseRepo.Create(course); err != nil {
		if err == repositories.ErrDuplicateCourseCode {
			return nil, apperrors.NewBadRequestError("Course code already in use")
		}
		return nil, apperrors.InternalError(err)
	}
	logger.Info("course created", "course_id", course.ID, "code", course.CourseCode)
	return course, nil
}

// ownedCourse loads a course and checks the caller teaches it.
func (s *CourseServiceImpl) ownedCourse(facultyUserID, courseID string) (*models.Course, error) {
	profile, err := s.approvedFaculty(facultyUserID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if course.FacultyID != profile.ID {
		return nil, apperrors.ErrForbidden
	}
	return course, nil
}

func (s *CourseServiceImpl) Update(facultyUserID, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.ownedCourse(facultyUserID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Syllabus != nil {
		course.Syllabus = *req.Syllabus
	}
	if req.Restrictions != nil {
		course.Restrictions = *req.Restrictions
	}
	if req.Visibility != nil {
		course.Visibility = *req.Visibility
	}
	if req.StartDate != nil {
		course.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		course.EndDate = req.EndDate
	}

	if err := s.courseRepo.Update(course); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return course, nil
}

func (s *CourseServiceImpl) Delete(facultyUserID, courseID string) error {
	if _, err := s.ownedCourse(facultyUserID, courseID); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(courseID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("course deleted", "course_id", courseID)
	return nil
}

func (s *CourseServiceImpl) Get(courseID string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return course, nil
}

func (s *CourseServiceImpl) List(filter repositories.CourseFilter) ([]models.Course, error) {
	courses, err := s.courseRepo.List(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return courses, nil
}

func (s *CourseServiceImpl) ListMine(facultyUserID string) ([]models.Course, error) {
	profile, err := s.approvedFaculty(facultyUserID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListByFaculty(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return courses, nil
}

func (s *CourseServiceImpl) Students(facultyUserID, courseID string) ([]models.StudentProfile, error) {
	if _, err := s.ownedCourse(facultyUserID, courseID); err != nil {
		return nil, err
	}
	students, err := s.courseRepo.EnrolledStudents(courseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range students {
		if students[i].User != nil {
			sanitized := students[i].User.Sanitized()
			students[i].User = &sanitized
		}
	}
	return students, nil
}

// Enroll adds a student to a course after visibility and restriction
// checks. Restricted courses only admit matching department and
// semester-eligible students.
func (s *CourseServiceImpl) Enroll(studentUserID, courseID string) error {
	profile, err := s.profileRepo.FindStudentByUserID(studentUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.ErrForbidden
		}
		return apperrors.InternalError(err)
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.InternalError(err)
	}

	if !course.Visibility {
		return apperrors.ErrCourseNotAvailable
	}
	if course.Restrictions && course.Department != profile.Department {
		return apperrors.ErrNotEligible
	}

	if err := s.courseRepo.Enroll(courseID, profile.ID); err != nil {
		if err == repositories.ErrAlreadyEnrolled {
			return apperrors.ErrAlreadyEnrolled
		}
		return apperrors.InternalError(err)
	}
	logger.Info("student enrolled", "course_id", courseID, "student_id", profile.ID)
	return nil
}

func (s *CourseServiceImpl) ListEnrolled(studentUserID string) ([]models.Course, error) {
	profile, err := s.profileRepo.FindStudentByUserID(studentUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.InternalError(err)
	}
	courses, err := s.courseRepo.ListEnrolled(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return courses, nil
}
