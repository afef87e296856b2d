package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

var (
	otpPattern        = regexp.MustCompile(`\b\d{6}\b`)
	resetTokenPattern = regexp.MustCompile(`[0-9a-f]{64}`)
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeProfileRepo, *fakeEmailProvider) {
	userRepo, profileRepo, provider := newFakes()
	tm := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(userRepo, profileRepo, tm, provider, "http://localhost:3000")
	return svc, userRepo, profileRepo, provider
}

func signupRequest(email string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:            "Jane Doe",
		Email:           email,
		Password:        "secret-pass-1",
		PasswordConfirm: "secret-pass-1",
		Department:      "Computer Science",
	}
}

// lastOTP pulls the 6-digit code out of the most recent email.
func lastOTP(t *testing.T, provider *fakeEmailProvider) string {
	t.Helper()
	require.NotEmpty(t, provider.sent)
	otp := otpPattern.FindString(provider.sent[len(provider.sent)-1].HTMLBody)
	require.Len(t, otp, 6)
	return otp
}

func lastResetToken(t *testing.T, provider *fakeEmailProvider) string {
	t.Helper()
	require.NotEmpty(t, provider.sent)
	token := resetTokenPattern.FindString(provider.sent[len(provider.sent)-1].HTMLBody)
	require.Len(t, token, 64)
	return token
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@univ.edu", resp.User.Email)
	assert.Len(t, provider.sent, 1)
	assert.Equal(t, "jane@univ.edu", provider.sent[0].To)

	user, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleFaculty, user.Role)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.False(t, user.IsVerified)
	require.NotNil(t, user.FacultyProfile)
	assert.Equal(t, "Computer Science", user.FacultyProfile.Department)
	assert.False(t, user.FacultyProfile.Approved)

	// Not verified yet, login must be refused.
	_, err = svc.Login(&dto.LoginRequest{Email: "jane@univ.edu", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)

	otp := lastOTP(t, provider)

	_, err = svc.VerifyOTP(resp.User.ID, "000000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	_, err = svc.VerifyOTP("no-such-user", otp)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	verified, err := svc.VerifyOTP(resp.User.ID, otp)
	require.NoError(t, err)
	assert.NotEmpty(t, verified.Token)
	assert.True(t, verified.User.IsVerified)

	user, err = userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Empty(t, user.EmailOTPHash)

	// Single use: the same code must not verify twice.
	_, err = svc.VerifyOTP(resp.User.ID, otp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	loggedIn, err := svc.Login(&dto.LoginRequest{Email: "jane@univ.edu", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestSignupNormalizesEmail(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	req := signupRequest("Jane@Univ.EDU")
	resp, err := svc.Signup(req)
	require.NoError(t, err)
	assert.Equal(t, "jane@univ.edu", resp.User.Email)

	// One spelling per address: a re-signup in another case is the
	// same account.
	_, err = svc.Signup(signupRequest("JANE@univ.edu"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	// Login and forgot-password match regardless of casing.
	_, err = svc.Login(&dto.LoginRequest{Email: "JANE@UNIV.edu", Password: "secret-pass-1"})
	assert.NoError(t, err)
	assert.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "Jane@univ.edu"}))

	user, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@univ.edu", user.Email)
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	req := signupRequest("jane@univ.edu")
	req.PasswordConfirm = "different-pass"
	_, err := svc.Signup(req)
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)

	// The pending signup still has a live OTP, so the email is taken.
	_, err = svc.Signup(signupRequest("jane@univ.edu"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignupReplacesStalePending(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	first, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)

	// Let the OTP window lapse.
	expired := time.Now().Add(-time.Minute)
	userRepo.users[first.User.ID].EmailOTPExpires = &expired

	second, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	assert.NotEqual(t, first.User.ID, second.User.ID)
	assert.Len(t, provider.sent, 2)

	_, err = userRepo.FindByID(first.User.ID)
	assert.Error(t, err)
}

func TestSignupEmailFailureRollsBack(t *testing.T) {
	svc, userRepo, profileRepo, provider := newAuthFixture()
	provider.fail = true

	_, err := svc.Signup(signupRequest("jane@univ.edu"))
	assert.ErrorIs(t, err, apperrors.ErrEmailDeliveryFailed)

	// Nothing half-created left behind, the email is reusable at once.
	assert.Empty(t, userRepo.users)
	assert.Empty(t, profileRepo.faculty)

	provider.fail = false
	_, err = svc.Signup(signupRequest("jane@univ.edu"))
	assert.NoError(t, err)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	otp := lastOTP(t, provider)

	expired := time.Now().Add(-time.Minute)
	userRepo.users[resp.User.ID].EmailOTPExpires = &expired

	_, err = svc.VerifyOTP(resp.User.ID, otp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
}

func TestLoginRejections(t *testing.T) {
	svc, _, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@univ.edu"})
	assert.ErrorIs(t, err, apperrors.ErrMissingCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@univ.edu", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@univ.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestForgotPasswordByEmail(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	err = svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "jane@univ.edu"})
	require.NoError(t, err)
	require.Len(t, provider.sent, 2)

	token := lastResetToken(t, provider)
	user, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.HashToken(token), user.ResetTokenHash)
	require.NotNil(t, user.ResetTokenExp)
	assert.True(t, user.ResetTokenExp.After(time.Now()))
}

func TestForgotPasswordByMIS(t *testing.T) {
	svc, userRepo, profileRepo, provider := newAuthFixture()

	student := &models.User{
		Name:       "Sam Student",
		Email:      "sam@univ.edu",
		Role:       models.UserRoleStudent,
		Status:     models.UserStatusActive,
		IsVerified: true,
	}
	require.NoError(t, userRepo.Create(student))
	require.NoError(t, profileRepo.CreateStudent(&models.StudentProfile{
		UserID:     student.ID,
		MIS:        "612345",
		Department: "Computer Science",
	}))

	err := svc.ForgotPassword(&dto.ForgotPasswordRequest{MIS: "612345"})
	require.NoError(t, err)
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "sam@univ.edu", provider.sent[0].To)
}

func TestForgotPasswordUnknownAccount(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	err := svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "nobody@univ.edu"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = svc.ForgotPassword(&dto.ForgotPasswordRequest{MIS: "612345"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = svc.ForgotPassword(&dto.ForgotPasswordRequest{})
	assert.Error(t, err)
}

func TestForgotPasswordEmailFailureClearsToken(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	provider.fail = true
	err = svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "jane@univ.edu"})
	assert.ErrorIs(t, err, apperrors.ErrEmailDeliveryFailed)

	user, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, user.ResetTokenHash)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "jane@univ.edu"}))
	token := lastResetToken(t, provider)

	_, err = svc.ResetPassword(token, "new-secret-1", "other")
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	_, err = svc.ResetPassword(token, "short", "short")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = svc.ResetPassword("not-the-token", "new-secret-1", "new-secret-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	out, err := svc.ResetPassword(token, "new-secret-1", "new-secret-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	// Token is consumed, a second reset with it must fail.
	_, err = svc.ResetPassword(token, "new-secret-2", "new-secret-2")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@univ.edu", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "jane@univ.edu", Password: "new-secret-1"})
	assert.NoError(t, err)

	// Sessions from before the reset are stale.
	user, err := userRepo.FindByID(resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user.PasswordChangedAt)
	assert.True(t, user.PasswordChangedAfter(time.Now().Add(-time.Hour)))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, userRepo, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "jane@univ.edu"}))
	token := lastResetToken(t, provider)

	expired := time.Now().Add(-time.Minute)
	userRepo.users[resp.User.ID].ResetTokenExp = &expired

	_, err = svc.ResetPassword(token, "new-secret-1", "new-secret-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestMe(t *testing.T) {
	svc, _, _, provider := newAuthFixture()

	resp, err := svc.Signup(signupRequest("jane@univ.edu"))
	require.NoError(t, err)
	_, err = svc.VerifyOTP(resp.User.ID, lastOTP(t, provider))
	require.NoError(t, err)

	me, err := svc.Me(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@univ.edu", me.Email)
	assert.Equal(t, "Computer Science", me.Department)

	_, err = svc.Me("no-such-user")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
