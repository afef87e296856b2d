package models

import "time"

type Course struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	CourseCode  string `gorm:"uniqueIndex;not null" json:"courseCode"`
	Department  string `gorm:"not null" json:"department"`
	Semester    int    `gorm:"not null" json:"semester"`
	Credits     int    `gorm:"default:3" json:"credits"`
	Syllabus    string `json:"syllabus,omitempty"`

	// Restrictions limits enrollment to matching department/semester;
	// Visibility hides the course from students entirely.
	Restrictions bool `gorm:"default:false" json:"restrictions"`
	Visibility   bool `gorm:"default:true" json:"visibility"`

	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	FacultyID string          `gorm:"type:uuid;not null;index" json:"facultyId"`
	Faculty   *FacultyProfile `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`

	Students []StudentProfile `gorm:"many2many:course_students" json:"studentsEnrolled,omitempty"`
}
