package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	requireAuth gin.HandlerFunc
	tokenTTL    time.Duration
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, requireAuth gin.HandlerFunc, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		requireAuth: requireAuth,
		tokenTTL:    tokenTTL,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.PATCH("/reset-password/:token", h.ResetPassword)

		auth.POST("/verify-otp", h.requireAuth, h.VerifyOTP)
		auth.GET("/me", h.requireAuth, h.Me)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Signup(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.VerifyOTP(userID, req.OTP)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// Logout is stateless: it only clears the cookie. Tokens expire on
// their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to your email"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.ResetPassword(c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, int(h.tokenTTL.Seconds()), "/", "", false, true)
}
