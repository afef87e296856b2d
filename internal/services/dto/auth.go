package dto

import (
	"time"

	"github.com/Arbaj2004/Smart-Learn/internal/models"
)

// SignupRequest starts a faculty registration. Students are provisioned
// by the admin import, admins are seeded, so the role is implicit.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Department      string `json:"department" validate:"required"`
	ProfilePic      string `json:"profilePic" validate:"omitempty,url"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest identifies the account either by email or,
// for students, by MIS number. Exactly one of the two is expected.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	MIS   string `json:"mis" validate:"omitempty,mis"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// AuthResponse carries the session token and the sanitized user.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	ProfilePic string            `json:"profilePic,omitempty"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"verified"`
	CreatedAt  time.Time         `json:"createdAt"`

	MIS        string `json:"mis,omitempty"`
	Department string `json:"department,omitempty"`
	Approved   *bool  `json:"approved,omitempty"`
}

// NewUserDTO flattens a user and its role profile into one payload.
func NewUserDTO(user *models.User) UserDTO {
	d := UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		ProfilePic: user.ProfilePic,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
	if user.StudentProfile != nil {
		d.MIS = user.StudentProfile.MIS
		d.Department = user.StudentProfile.Department
	}
	if user.FacultyProfile != nil {
		d.Department = user.FacultyProfile.Department
		approved := user.FacultyProfile.Approved
		d.Approved = &approved
	}
	return d
}
