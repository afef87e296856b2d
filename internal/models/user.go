package models

import "time"

// User is the identity anchor for every person in the system regardless of
// role. The email column always stores the real address; a pending signup is
// marked by Status/IsVerified rather than by rewriting the email.
type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	ProfilePic   string     `json:"profilePic,omitempty"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"verified"`

	// Email OTP window, live only while a signup awaits verification.
	EmailOTPHash    string     `json:"-"`
	EmailOTPExpires *time.Time `json:"-"`

	// Password reset window, independent of the OTP lifecycle.
	ResetTokenHash string     `json:"-"`
	ResetTokenExp  *time.Time `json:"-"`

	// Tokens issued before this instant are rejected by the auth middleware.
	PasswordChangedAt *time.Time `json:"-"`

	// Relations
	StudentProfile *StudentProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"studentProfile,omitempty"`
	FacultyProfile *FacultyProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"facultyProfile,omitempty"`
	AdminProfile   *AdminProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"adminProfile,omitempty"`
}

// Sanitized returns a copy safe to serialize: secret material stays out of
// responses via json tags, this additionally blanks the hash for callers
// that marshal the struct through other paths.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.EmailOTPHash = ""
	u.ResetTokenHash = ""
	return u
}

// PasswordChangedAfter reports whether the password was changed after the
// given instant (typically a token's issued-at).
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// Truncate to seconds: JWT iat has second precision.
	return u.PasswordChangedAt.Truncate(time.Second).After(t.Truncate(time.Second))
}
