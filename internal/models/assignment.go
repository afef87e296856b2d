package models

import "time"

type Assignment struct {
	BaseModel
	CourseID     string    `gorm:"type:uuid;not null;index" json:"courseId"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	Instructions string    `json:"instructions"`
	DueDate      time.Time `gorm:"not null" json:"dueDate"`
	MaxMarks     int       `gorm:"not null" json:"maxMarks"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

type Submission struct {
	BaseModel
	AssignmentID string           `gorm:"type:uuid;not null;index" json:"assignmentId"`
	UserID       string           `gorm:"type:uuid;not null;index" json:"userId"`
	FileURL      string           `gorm:"not null" json:"fileUrl"`
	SubmittedAt  *time.Time       `json:"submittedAt,omitempty"`
	Status       SubmissionStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	Grade        int              `gorm:"default:0" json:"grade"`
	Feedback     string           `json:"feedback,omitempty"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
