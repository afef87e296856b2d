package services

import (
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

type AdminService interface {
	ListFaculty(approved *bool) ([]dto.FacultyDTO, error)
	ApproveFaculty(facultyID string) (*dto.FacultyDTO, error)
	RemoveFaculty(facultyID string) error
	Stats() (*dto.PlatformStats, error)
}

type AdminServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	courseRepo  repositories.CourseRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	courseRepo repositories.CourseRepository,
) AdminService {
	return &AdminServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		courseRepo:  courseRepo,
	}
}

func (s *AdminServiceImpl) ListFaculty(approved *bool) ([]dto.FacultyDTO, error) {
	profiles, err := s.profileRepo.ListFaculty(approved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.FacultyDTO, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, newFacultyDTO(&p))
	}
	return result, nil
}

func (s *AdminServiceImpl) ApproveFaculty(facultyID string) (*dto.FacultyDTO, error) {
	profile, err := s.profileRepo.ApproveFaculty(facultyID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	logger.Info("faculty approved", "faculty_id", facultyID)
	d := newFacultyDTO(profile)
	return &d, nil
}

// RemoveFaculty deletes the faculty member's user account; the profile
// goes with it through the FK cascade.
func (s *AdminServiceImpl) RemoveFaculty(facultyID string) error {
	profile, err := s.profileRepo.FindFacultyByID(facultyID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.ErrFacultyNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(profile.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("faculty removed", "faculty_id", facultyID, "user_id", profile.UserID)
	return nil
}

func (s *AdminServiceImpl) Stats() (*dto.PlatformStats, error) {
	stats := &dto.PlatformStats{}

	var err error
	if stats.Students, err = s.userRepo.CountByRole(models.UserRoleStudent); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Faculty, err = s.profileRepo.CountFaculty(nil); err != nil {
		return nil, apperrors.InternalError(err)
	}
	approved := true
	if stats.ApprovedFaculty, err = s.profileRepo.CountFaculty(&approved); err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.PendingFaculty = stats.Faculty - stats.ApprovedFaculty
	if stats.Courses, err = s.courseRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func newFacultyDTO(p *models.FacultyProfile) dto.FacultyDTO {
	d := dto.FacultyDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		Department: p.Department,
		Approved:   p.Approved,
	}
	if p.User != nil {
		d.Name = p.User.Name
		d.Email = p.User.Email
	}
	return d
}
