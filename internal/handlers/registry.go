package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/middleware"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/validator"
)

// AppHandlers bundles every HTTP handler in the application.
type AppHandlers struct {
	Auth       *AuthHandler
	Admin      *AdminHandler
	Course     *CourseHandler
	Assignment *AssignmentHandler
	User       *UserHandler
}

// NewAppHandlers wires handlers to services and role middleware.
func NewAppHandlers(
	container *services.ServiceContainer,
	v *validator.Validator,
	requireAuth gin.HandlerFunc,
	tokenTTL time.Duration,
	maxUploadSize int64,
) *AppHandlers {
	base := NewBaseHandler(v)

	requireAdmin := middleware.RequireRoles(models.UserRoleAdmin)
	requireFaculty := middleware.RequireRoles(models.UserRoleFaculty)
	requireStudent := middleware.RequireRoles(models.UserRoleStudent)

	return &AppHandlers{
		Auth:       NewAuthHandler(base, container.AuthService, requireAuth, tokenTTL),
		Admin:      NewAdminHandler(base, container.AdminService, container.ImportService, requireAuth, requireAdmin),
		Course:     NewCourseHandler(base, container.CourseService, requireAuth, requireFaculty, requireStudent),
		Assignment: NewAssignmentHandler(base, container.AssignmentService, requireAuth, requireFaculty, requireStudent, maxUploadSize),
		User:       NewUserHandler(base, container.UserService, requireAuth),
	}
}
