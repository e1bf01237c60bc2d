package dto

import "time"

// UserSummary is the public card embedded in friend and notification payloads.
type UserSummary struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	Age       *int      `json:"age,omitempty"`
	AvatarURL string    `json:"avatar_url"`
	Skills    []string  `json:"skills"`
	Languages []string  `json:"languages"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UserSearchRequest struct {
	Search string `form:"search" validate:"omitempty,max=100"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}
