package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSelfFriendship = errors.New("a user cannot be friends with themselves")

// Friendship is an undirected edge stored once as (low, high).
type Friendship struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserLowID  uint      `gorm:"not null;uniqueIndex:idx_friendship_pair,priority:1" json:"user_low_id"`
	UserHighID uint      `gorm:"not null;uniqueIndex:idx_friendship_pair,priority:2;index" json:"user_high_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// CanonicalPair orders two user ids ascending so {a,b} has one representation.
func CanonicalPair(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}

func NewFriendship(a, b uint) *Friendship {
	low, high := CanonicalPair(a, b)
	return &Friendship{UserLowID: low, UserHighID: high}
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.UserLowID == f.UserHighID {
		return ErrSelfFriendship
	}
	f.UserLowID, f.UserHighID = CanonicalPair(f.UserLowID, f.UserHighID)
	return nil
}

// FriendOf returns the other endpoint of the edge.
func (f *Friendship) FriendOf(userID uint) uint {
	if f.UserLowID == userID {
		return f.UserHighID
	}
	return f.UserLowID
}
