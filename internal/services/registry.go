package services

import (
	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/config"
	"github.com/Arbaj2004/Smart-Learn/internal/email"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/storage"
)

// ServiceContainer holds every application service, wired once at
// startup.
type ServiceContainer struct {
	AuthService       AuthService
	ImportService     ImportService
	AdminService      AdminService
	CourseService     CourseService
	AssignmentService AssignmentService
	UserService       UserService

	UserRepo repositories.UserRepository
}

func NewServiceContainer(
	db *gorm.DB,
	cfg *config.Config,
	tokenManager *auth.TokenManager,
	emailProvider email.Provider,
	store storage.Storage,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)

	return &ServiceContainer{
		AuthService:       NewAuthService(userRepo, profileRepo, tokenManager, emailProvider, cfg.FrontendURL),
		ImportService:     NewImportService(userRepo, profileRepo),
		AdminService:      NewAdminService(userRepo, profileRepo, courseRepo),
		CourseService:     NewCourseService(courseRepo, profileRepo),
		AssignmentService: NewAssignmentService(assignmentRepo, courseRepo, profileRepo, store),
		UserService:       NewUserService(userRepo),
		UserRepo:          userRepo,
	}
}
