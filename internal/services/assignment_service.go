package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/internal/storage"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

type SubmissionUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

type AssignmentService interface {
	Create(facultyUserID, courseID string, req *dto.CreateAssignmentRequest) (*models.Assignment, error)
	Update(facultyUserID, assignmentID string, req *dto.UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(facultyUserID, assignmentID string) error
	Get(assignmentID string) (*models.Assignment, error)
	ListByCourse(courseID string) ([]models.Assignment, error)

	Submit(ctx context.Context, studentUserID, assignmentID string, upload *SubmissionUpload) (*models.Submission, error)
	MySubmission(studentUserID, assignmentID string) (*models.Submission, error)
	MySubmissions(studentUserID string) ([]models.Submission, error)
	ListSubmissions(facultyUserID, assignmentID string) ([]models.Submission, error)
	Grade(facultyUserID, submissionID string, req *dto.GradeSubmissionRequest) (*models.Submission, error)
}

type AssignmentServiceImpl struct {
	assignmentRepo repositories.AssignmentRepository
	courseRepo     repositories.CourseRepository
	profileRepo    repositories.ProfileRepository
	store          storage.Storage
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	courseRepo repositories.CourseRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
) AssignmentService {
	return &AssignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		profileRepo:    profileRepo,
		store:          store,
	}
}

// ownsCourse checks the caller is the approved faculty teaching the
// course.
func (s *AssignmentServiceImpl) ownsCourse(facultyUserID string, course *models.Course) error {
	profile, err := s.profileRepo.FindFacultyByUserID(facultyUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.ErrForbidden
		}
		return apperrors.InternalError(err)
	}
	if !profile.Approved {
		return apperrors.ErrFacultyNotApproved
	}
	if course.FacultyID != profile.ID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *AssignmentServiceImpl) Create(facultyUserID, courseID string, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.ownsCourse(facultyUserID, course); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		CourseID:     courseID,
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		DueDate:      req.DueDate,
		MaxMarks:     req.MaxMarks,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.Info("assignment created", "assignment_id", assignment.ID, "course_id", courseID)
	return assignment, nil
}

func (s *AssignmentServiceImpl) ownedAssignment(facultyUserID, assignmentID string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if assignment.Course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	if err := s.ownsCourse(facultyUserID, assignment.Course); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentServiceImpl) Update(facultyUserID, assignmentID string, req *dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.ownedAssignment(facultyUserID, assignmentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.Instructions != nil {
		assignment.Instructions = *req.Instructions
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	if req.MaxMarks != nil {
		assignment.MaxMarks = *req.MaxMarks
	}

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assignment, nil
}

func (s *AssignmentServiceImpl) Delete(facultyUserID, assignmentID string) error {
	if _, err := s.ownedAssignment(facultyUserID, assignmentID); err != nil {
		return err
	}
	if err := s.assignmentRepo.Delete(assignmentID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("assignment deleted", "assignment_id", assignmentID)
	return nil
}

func (s *AssignmentServiceImpl) Get(assignmentID string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return assignment, nil
}

func (s *AssignmentServiceImpl) ListByCourse(courseID string) ([]models.Assignment, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	assignments, err := s.assignmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assignments, nil
}

// Submit stores the uploaded file and records the submission. An
// enrolled student can resubmit until graded; the file is replaced.
func (s *AssignmentServiceImpl) Submit(ctx context.Context, studentUserID, assignmentID string, upload *SubmissionUpload) (*models.Submission, error) {
	profile, err := s.profileRepo.FindStudentByUserID(studentUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.InternalError(err)
	}

	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	enrolled, err := s.courseRepo.IsEnrolled(assignment.CourseID, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !enrolled {
		return nil, apperrors.ErrForbidden
	}

	key := fmt.Sprintf("submissions/%s/%s%s", assignmentID, studentUserID, filepath.Ext(upload.FileName))
	fileURL, err := s.store.Save(ctx, key, upload.Reader, upload.ContentType)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	now := time.Now()
	submission, err := s.assignmentRepo.FindSubmission(assignmentID, studentUserID)
	switch {
	case err == nil:
		if submission.Status == models.SubmissionStatusGraded {
			return nil, apperrors.NewBadRequestError("Submission already graded")
		}
		submission.FileURL = fileURL
		submission.SubmittedAt = &now
		submission.Status = models.SubmissionStatusSubmitted
		if err := s.assignmentRepo.UpdateSubmission(submission); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case err == repositories.ErrNotFound:
		submission = &models.Submission{
			AssignmentID: assignmentID,
			UserID:       studentUserID,
			FileURL:      fileURL,
			SubmittedAt:  &now,
			Status:       models.SubmissionStatusSubmitted,
		}
		if err := s.assignmentRepo.CreateSubmission(submission); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	logger.Info("submission stored", "assignment_id", assignmentID, "user_id", studentUserID)
	return submission, nil
}

func (s *AssignmentServiceImpl) MySubmission(studentUserID, assignmentID string) (*models.Submission, error) {
	submission, err := s.assignmentRepo.FindSubmission(assignmentID, studentUserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return submission, nil
}

// MySubmissions lists the caller's submissions across all assignments,
// most recent first.
func (s *AssignmentServiceImpl) MySubmissions(studentUserID string) ([]models.Submission, error) {
	submissions, err := s.assignmentRepo.ListSubmissionsByUser(studentUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return submissions, nil
}

func (s *AssignmentServiceImpl) ListSubmissions(facultyUserID, assignmentID string) ([]models.Submission, error) {
	if _, err := s.ownedAssignment(facultyUserID, assignmentID); err != nil {
		return nil, err
	}
	submissions, err := s.assignmentRepo.ListSubmissions(assignmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range submissions {
		if submissions[i].User != nil {
			sanitized := submissions[i].User.Sanitized()
			submissions[i].User = &sanitized
		}
	}
	return submissions, nil
}

func (s *AssignmentServiceImpl) Grade(facultyUserID, submissionID string, req *dto.GradeSubmissionRequest) (*models.Submission, error) {
	submission, err := s.assignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if submission.Assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}
	if _, err := s.ownedAssignment(facultyUserID, submission.AssignmentID); err != nil {
		return nil, err
	}
	if req.Grade > submission.Assignment.MaxMarks {
		return nil, apperrors.NewBadRequestError("Grade exceeds maximum marks")
	}

	submission.Grade = req.Grade
	submission.Feedback = req.Feedback
	submission.Status = models.SubmissionStatusGraded
	if err := s.assignmentRepo.UpdateSubmission(submission); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.Info("submission graded", "submission_id", submissionID, "grade", req.Grade)
	return submission, nil
}
