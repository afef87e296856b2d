package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable, machine-readable error kind.
type ErrorCode string

// AppError is the application error carried from services up to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets predeclared AppError values act as sentinels for errors.Is:
// two AppErrors match when their codes match.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying extra context so the predeclared
// sentinel values stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is and As re-export the stdlib helpers so callers don't need a second
// errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication
	ErrMissingCredentials = New(CodeMissingCredentials, "Please provide email and password", http.StatusBadRequest)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Incorrect email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "You are not logged in! Please log in to get access", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "You do not have permission to perform this action", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrPasswordChanged    = New(CodePasswordChanged, "User recently changed password! Please log in again", http.StatusUnauthorized)

	// Signup and verification
	ErrPasswordMismatch    = New(CodePasswordMismatch, "Passwords do not match", http.StatusBadRequest)
	ErrEmailAlreadyExists  = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrMISAlreadyExists    = New(CodeMISAlreadyExists, "MIS number already exists", http.StatusConflict)
	ErrInvalidOTP          = New(CodeInvalidOTP, "Invalid OTP or OTP expired. Please try again", http.StatusUnauthorized)
	ErrInvalidResetToken   = New(CodeInvalidResetToken, "Token is invalid or has expired", http.StatusBadRequest)
	ErrUserNotVerified     = New(CodeUserNotVerified, "User not verified", http.StatusForbidden)
	ErrEmailDeliveryFailed = New(CodeEmailDeliveryFailed, "There was an error sending the email. Try again later", http.StatusInternalServerError)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrWeakPassword     = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)

	// Resources
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrProfileNotFound    = New(CodeProfileNotFound, "Profile not found", http.StatusNotFound)
	ErrFacultyNotFound    = New(CodeFacultyNotFound, "Faculty not found", http.StatusNotFound)
	ErrCourseNotFound     = New(CodeCourseNotFound, "Course not found", http.StatusNotFound)
	ErrAssignmentNotFound = New(CodeAssignmentNotFound, "Assignment not found", http.StatusNotFound)
	ErrSubmissionNotFound = New(CodeSubmissionNotFound, "Submission not found", http.StatusNotFound)

	// Business logic
	ErrFacultyNotApproved = New(CodeFacultyNotApproved, "Faculty account is not approved yet", http.StatusForbidden)
	ErrAlreadyEnrolled    = New(CodeAlreadyEnrolled, "You are already enrolled in this course", http.StatusBadRequest)
	ErrCourseNotAvailable = New(CodeCourseNotAvailable, "Course is not available for enrollment", http.StatusForbidden)
	ErrNotEligible        = New(CodeNotEligible, "You are not eligible for this course", http.StatusForbidden)
)

// Helpers

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "File storage operation failed", http.StatusInternalServerError)
}

func ParseError(err error) *AppError {
	return Wrap(err, CodeCSVParseError, "Could not parse the uploaded file", http.StatusBadRequest)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}
