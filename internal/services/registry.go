package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	UserService         UserService
	AuthService         AuthService
	FriendService       FriendService
	NotificationService NotificationService
}
