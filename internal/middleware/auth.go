package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
	"github.com/Arbaj2004/Smart-Learn/pkg/contextkeys"
)

// AuthMiddleware verifies the bearer token (cookie fallback), loads
// the user behind it and attaches the identity to the request. A user
// deleted after token issue, or one who changed their password since,
// is rejected.
func AuthMiddleware(tokenManager *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := tokenManager.Parse(tokenString)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
			apperrors.HandleError(c, apperrors.ErrPasswordChanged)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserKey), user)
		c.Set(string(contextkeys.UserIDKey), user.ID)
		c.Set(string(contextkeys.RoleKey), user.Role)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles gates a route group to the given role set. Must run
// after AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.RoleKey))
		if !exists {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		role, ok := roleVal.(models.UserRole)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apperrors.HandleError(c, apperrors.ErrForbidden)
		c.Abort()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
