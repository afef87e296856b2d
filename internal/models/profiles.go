package models

// StudentProfile carries the student-specific half of an identity.
// MIS is the institution-assigned student number, unique across students.
type StudentProfile struct {
	BaseModel
	UserID     string `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	MIS        string `gorm:"uniqueIndex;not null" json:"mis"`
	Department string `gorm:"not null" json:"department"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// FacultyProfile is created alongside the user at signup. Faculty accounts
// stay unusable for course creation until an admin flips Approved.
type FacultyProfile struct {
	BaseModel
	UserID     string `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Department string `gorm:"not null" json:"department"`
	Approved   bool   `gorm:"default:false" json:"approved"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type AdminProfile struct {
	BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
