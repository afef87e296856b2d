package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/email"
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

const (
	otpTTL   = 10 * time.Minute
	resetTTL = 10 * time.Minute
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.AuthResponse, error)
	VerifyOTP(userID, otp string) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(req *dto.ForgotPasswordRequest) error
	ResetPassword(token, password, passwordConfirm string) (*dto.AuthResponse, error)
	Me(userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	tokenManager  *auth.TokenManager
	emailProvider email.Provider
	frontendURL   string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokenManager *auth.TokenManager,
	emailProvider email.Provider,
	frontendURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		tokenManager:  tokenManager,
		emailProvider: emailProvider,
		frontendURL:   frontendURL,
	}
}

// Signup registers a pending faculty account and emails a 6-digit OTP.
// Students never pass through here, they are provisioned by the admin
// import already verified.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	emailAddr := normalizeEmail(req.Email)
	existing, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil && err != repositories.ErrNotFound {
		return nil, apperrors.InternalError(err)
	}
	if existing != nil {
		// A stale pending signup whose OTP window has lapsed can be
		// replaced. Anything else is a genuine duplicate.
		if existing.Status == models.UserStatusPending && otpExpired(existing) {
			if err := s.userRepo.Delete(existing.ID); err != nil {
				return nil, apperrors.InternalError(err)
			}
		} else {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	otpExpires := time.Now().Add(otpTTL)

	user := &models.User{
		Name:            req.Name,
		Email:           emailAddr,
		PasswordHash:    hash,
		ProfilePic:      req.ProfilePic,
		Role:            models.UserRoleFaculty,
		Status:          models.UserStatusPending,
		EmailOTPHash:    auth.HashToken(otp),
		EmailOTPExpires: &otpExpires,
	}
	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrDuplicateEmail {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// The profile rides along from the start so the department survives
	// until verification. It stays unapproved until an admin acts.
	profile := &models.FacultyProfile{
		UserID:     user.ID,
		Department: req.Department,
	}
	if err := s.profileRepo.CreateFaculty(profile); err != nil {
		s.rollbackSignup(user.ID)
		return nil, apperrors.InternalError(err)
	}

	msg, err := email.NewOTPMessage(user.Email, user.Name, otp, int(otpTTL.Minutes()))
	if err != nil {
		s.rollbackSignup(user.ID)
		return nil, apperrors.InternalError(err)
	}
	if err := s.emailProvider.Send(msg); err != nil {
		logger.WithError(err).Error("failed to send OTP email", "email", user.Email)
		s.rollbackSignup(user.ID)
		return nil, apperrors.ErrEmailDeliveryFailed
	}

	return s.authResponse(user)
}

// rollbackSignup removes the half-created account so the email can be
// used again immediately.
func (s *AuthServiceImpl) rollbackSignup(userID string) {
	if err := s.userRepo.Delete(userID); err != nil {
		logger.WithError(err).Error("failed to roll back signup", "user_id", userID)
	}
}

// VerifyOTP promotes a pending account to verified+active. The OTP is
// single-use: verification clears the stored hash.
func (s *AuthServiceImpl) VerifyOTP(userID, otp string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.InternalError(err)
	}

	if user.EmailOTPHash == "" || otpExpired(user) {
		return nil, apperrors.ErrInvalidOTP
	}
	if auth.HashToken(otp) != user.EmailOTPHash {
		return nil, apperrors.ErrInvalidOTP
	}

	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.EmailOTPHash = ""
	user.EmailOTPExpires = nil

	// Profile creation is idempotent: normally it exists from signup,
	// but a retried verification must not fail on it either way.
	if user.Role == models.UserRoleFaculty && user.FacultyProfile == nil {
		profile := &models.FacultyProfile{UserID: user.ID}
		if err := s.profileRepo.CreateFaculty(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.FacultyProfile = profile
	}

	return s.authResponse(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	return s.authResponse(user)
}

// ForgotPassword looks the account up by email or, for students, by
// MIS, and emails a reset link. The raw token never touches storage.
func (s *AuthServiceImpl) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	user, err := s.findForReset(req)
	if err != nil {
		return err
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expires := time.Now().Add(resetTTL)
	if err := s.userRepo.SetResetToken(user.ID, auth.HashToken(token), expires); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	msg, err := email.NewResetMessage(user.Email, user.Name, resetURL, int(resetTTL.Minutes()))
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.emailProvider.Send(msg); err != nil {
		logger.WithError(err).Error("failed to send reset email", "email", user.Email)
		// Clear the window so a later attempt starts clean.
		if clearErr := s.userRepo.SetResetToken(user.ID, "", time.Now()); clearErr != nil {
			logger.WithError(clearErr).Error("failed to clear reset token", "user_id", user.ID)
		}
		return apperrors.ErrEmailDeliveryFailed
	}

	return nil
}

func (s *AuthServiceImpl) findForReset(req *dto.ForgotPasswordRequest) (*models.User, error) {
	if req.Email != "" {
		user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
		if err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return user, nil
	}
	if req.MIS != "" {
		profile, err := s.profileRepo.FindStudentByMIS(req.MIS)
		if err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		if profile.User == nil {
			return nil, apperrors.ErrUserNotFound
		}
		return profile.User, nil
	}
	return nil, apperrors.NewBadRequestError("Provide email or MIS")
}

// ResetPassword consumes a reset token. A successful reset also marks
// the account verified and bumps PasswordChangedAt so tokens issued
// before it stop working.
func (s *AuthServiceImpl) ResetPassword(token, password, passwordConfirm string) (*dto.AuthResponse, error) {
	if password != passwordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetTokenHash(auth.HashToken(token))
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Backdate by a second so the token issued right after the reset is
	// not itself rejected as stale.
	changedAt := time.Now().Add(-time.Second)
	if err := s.userRepo.SetPassword(user.ID, hash, changedAt); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.ResetTokenHash = ""
	user.ResetTokenExp = nil

	return s.authResponse(user)
}

func (s *AuthServiceImpl) Me(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	d := dto.NewUserDTO(user)
	return &d, nil
}

func (s *AuthServiceImpl) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokenManager.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserDTO(user)}, nil
}

func otpExpired(user *models.User) bool {
	return user.EmailOTPExpires == nil || user.EmailOTPExpires.Before(time.Now())
}

// normalizeEmail keeps the two provisioning paths (signup and the CSV
// import) agreeing on one spelling per address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
