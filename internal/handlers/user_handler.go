package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	requireAuth gin.HandlerFunc
}

func NewUserHandler(base *BaseHandler, userService services.UserService, requireAuth gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		requireAuth: requireAuth,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(h.requireAuth)
	{
		users.PATCH("/me", h.UpdateMe)
	}
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
