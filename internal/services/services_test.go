package services

import (
	"testing"

	"socialhub_backend/internal/models"
	"socialhub_backend/internal/repositories"
	"socialhub_backend/internal/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	users         UserService
	notifications NotificationService
	friends       FriendService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	userRepo := repositories.NewUserRepository()
	users := NewUserService(userRepo)
	notifications := NewNotificationService(repositories.NewNotificationRepository(), userRepo, 0)
	friends := NewFriendService(
		repositories.NewFriendRequestRepository(),
		repositories.NewFriendshipRepository(),
		userRepo,
		users,
		notifications,
	)

	return &fixture{db: db, users: users, notifications: notifications, friends: friends}
}

func (f *fixture) user(t *testing.T, email, name string) *models.User {
	t.Helper()
	return testutil.CreateUser(t, f.db, email, name)
}

func (f *fixture) countNotifications(t *testing.T, recipientID uint, notificationType models.NotificationType) int64 {
	t.Helper()
	var count int64
	err := f.db.Model(&models.Notification{}).
		Where("recipient_user_id = ? AND type = ?", recipientID, notificationType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}

func (f *fixture) countRequests(t *testing.T, fromID, toID uint) int64 {
	t.Helper()
	var count int64
	err := f.db.Model(&models.FriendRequest{}).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count requests: %v", err)
	}
	return count
}

func (f *fixture) countFriendships(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&models.Friendship{}).Count(&count).Error; err != nil {
		t.Fatalf("count friendships: %v", err)
	}
	return count
}
