package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an append-only notice owned by its recipient. Only the
// read flag is ever updated.
type Notification struct {
	ID              uint             `gorm:"primaryKey"`
	RecipientUserID uint             `gorm:"not null;index:idx_notification_recipient_created,priority:1"`
	ActorUserID     *uint
	Actor           *User            `gorm:"foreignKey:ActorUserID;constraint:OnDelete:SET NULL"`
	Type            NotificationType `gorm:"type:varchar(32);not null"`
	Text            string           `gorm:"type:text;not null"`
	Data            datatypes.JSON
	IsRead          bool             `gorm:"default:false;not null"`
	ReadAt          *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_notification_recipient_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}
