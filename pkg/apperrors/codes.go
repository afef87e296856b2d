package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodePasswordChanged    ErrorCode = "PASSWORD_CHANGED"

	// Signup and verification
	CodePasswordMismatch    ErrorCode = "PASSWORD_MISMATCH"
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeMISAlreadyExists    ErrorCode = "MIS_ALREADY_EXISTS"
	CodeInvalidOTP          ErrorCode = "INVALID_OR_EXPIRED_OTP"
	CodeInvalidResetToken   ErrorCode = "INVALID_OR_EXPIRED_TOKEN"
	CodeUserNotVerified     ErrorCode = "USER_NOT_VERIFIED"
	CodeEmailDeliveryFailed ErrorCode = "EMAIL_DELIVERY_FAILED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	CodeFacultyNotFound    ErrorCode = "FACULTY_NOT_FOUND"
	CodeCourseNotFound     ErrorCode = "COURSE_NOT_FOUND"
	CodeAssignmentNotFound ErrorCode = "ASSIGNMENT_NOT_FOUND"
	CodeSubmissionNotFound ErrorCode = "SUBMISSION_NOT_FOUND"

	// Business logic
	CodeFacultyNotApproved ErrorCode = "FACULTY_NOT_APPROVED"
	CodeAlreadyEnrolled    ErrorCode = "ALREADY_ENROLLED"
	CodeCourseNotAvailable ErrorCode = "COURSE_NOT_AVAILABLE"
	CodeNotEligible        ErrorCode = "NOT_ELIGIBLE"
	CodeCSVParseError      ErrorCode = "CSV_PARSE_ERROR"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"
)
