package dto

import "time"

type CreateAssignmentRequest struct {
	Title        string    `json:"title" validate:"required,min=2"`
	Description  string    `json:"description" validate:"required"`
	Instructions string    `json:"instructions"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	MaxMarks     int       `json:"maxMarks" validate:"required,min=1"`
}

type UpdateAssignmentRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=2"`
	Description  *string    `json:"description"`
	Instructions *string    `json:"instructions"`
	DueDate      *time.Time `json:"dueDate"`
	MaxMarks     *int       `json:"maxMarks" validate:"omitempty,min=1"`
}

type GradeSubmissionRequest struct {
	Grade    int    `json:"grade" validate:"min=0"`
	Feedback string `json:"feedback"`
}
