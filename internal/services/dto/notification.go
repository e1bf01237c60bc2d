package dto

import (
	"encoding/json"
	"time"
)

type NotificationListRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1"`
}

type NotificationResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Data      json.RawMessage `json:"data"`
	IsRead    bool            `json:"is_read"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	Actor     *UserSummary    `json:"actor"`
	CreatedAt time.Time       `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// SystemNotificationRequest is the staff-only broadcast body.
type SystemNotificationRequest struct {
	RecipientIDs []uint                 `json:"recipient_ids" validate:"required,min=1,max=500"`
	Text         string                 `json:"text" validate:"required,max=1000"`
	Data         map[string]interface{} `json:"data"`
}
