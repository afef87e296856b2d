package dto

import "time"

type CreateCourseRequest struct {
	Title        string     `json:"title" validate:"required,min=2"`
	Description  string     `json:"description" validate:"required"`
	CourseCode   string     `json:"courseCode" validate:"required,min=2"`
	Department   string     `json:"department" validate:"required"`
	Semester     int        `json:"semester" validate:"required,min=1,max=12"`
	Credits      int        `json:"credits" validate:"omitempty,min=1,max=10"`
	Syllabus     string     `json:"syllabus"`
	Restrictions bool       `json:"restrictions"`
	Visibility   *bool      `json:"visibility"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate"`
}

type UpdateCourseRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=2"`
	Description  *string    `json:"description"`
	Syllabus     *string    `json:"syllabus"`
	Restrictions *bool      `json:"restrictions"`
	Visibility   *bool      `json:"visibility"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}
