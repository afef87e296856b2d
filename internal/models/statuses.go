package models

type UserRole string
type UserStatus string
type SubmissionStatus string

const (
	UserRoleStudent UserRole = "Student"
	UserRoleFaculty UserRole = "Faculty"
	UserRoleAdmin   UserRole = "Admin"

	// Pending users have signed up but not yet proven email ownership.
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"

	SubmissionStatusPending   SubmissionStatus = "Pending"
	SubmissionStatusSubmitted SubmissionStatus = "Submitted"
	SubmissionStatusGraded    SubmissionStatus = "Graded"
)
