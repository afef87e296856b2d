package dto

type UpdateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2"`
	ProfilePic *string `json:"profilePic" validate:"omitempty,url"`
}
