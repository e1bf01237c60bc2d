package dto

import "time"

type SendFriendRequestRequest struct {
	TargetID uint `json:"target_id" validate:"required"`
}

type FriendRequestListRequest struct {
	Status string `form:"status" validate:"omitempty,is-friend-request-status"`
}

type FriendRequestResponse struct {
	ID        uint         `json:"id"`
	FromUser  *UserSummary `json:"from_user"`
	ToUser    *UserSummary `json:"to_user"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SendFriendRequestResponse reports whether Send created/revived a request
// or accepted the counterpart's pending one.
type SendFriendRequestResponse struct {
	Outcome string                 `json:"outcome"`
	Request *FriendRequestResponse `json:"request"`
}

type FriendshipResponse struct {
	ID        uint         `json:"id"`
	Friend    *UserSummary `json:"friend"`
	CreatedAt time.Time    `json:"created_at"`
}
