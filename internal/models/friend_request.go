package models

import (
	"errors"

	"gorm.io/gorm"
)

var ErrSelfFriendRequest = errors.New("friend request sender and recipient must differ")

// FriendRequest is a directed request. There is at most one row per ordered
// (from, to) pair; resubmission after reject/cancel revives the same row.
type FriendRequest struct {
	BaseModel
	FromUserID uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair,priority:1"`
	FromUser   *User               `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE"`
	ToUserID   uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair,priority:2;index"`
	ToUser     *User               `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.FromUserID == r.ToUserID {
		return ErrSelfFriendRequest
	}
	if r.Status == "" {
		r.Status = FriendRequestStatusPending
	}
	if r.Status != FriendRequestStatusPending {
		return gorm.ErrInvalidData
	}
	return nil
}

func (r *FriendRequest) IsPending() bool {
	return r.Status == FriendRequestStatusPending
}

var friendRequestTransitions = map[FriendRequestStatus][]FriendRequestStatus{
	FriendRequestStatusPending: {
		FriendRequestStatusAccepted,
		FriendRequestStatusRejected,
		FriendRequestStatusCancelled,
	},
	// resubmission by the original sender
	FriendRequestStatusRejected:  {FriendRequestStatusPending},
	FriendRequestStatusCancelled: {FriendRequestStatusPending},
}

// CanTransition reports whether a request may move from one status to another.
// Accepted is terminal.
func CanTransition(from, to FriendRequestStatus) bool {
	for _, next := range friendRequestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
