package models

type FriendRequestStatus string
type NotificationType string

const (
	FriendRequestStatusPending   FriendRequestStatus = "pending"
	FriendRequestStatusAccepted  FriendRequestStatus = "accepted"
	FriendRequestStatusRejected  FriendRequestStatus = "rejected"
	FriendRequestStatusCancelled FriendRequestStatus = "cancelled"

	NotificationTypeFriendRequest NotificationType = "friend_request"
	NotificationTypeFriendAccept  NotificationType = "friend_accept"
	NotificationTypeMessage       NotificationType = "message"
	NotificationTypeSystem        NotificationType = "system"
)

func (s FriendRequestStatus) IsValid() bool {
	switch s {
	case FriendRequestStatusPending, FriendRequestStatusAccepted,
		FriendRequestStatusRejected, FriendRequestStatusCancelled:
		return true
	}
	return false
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeFriendRequest, NotificationTypeFriendAccept,
		NotificationTypeMessage, NotificationTypeSystem:
		return true
	}
	return false
}
