package handlers

type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	FriendHandler       *FriendHandler
	NotificationHandler *NotificationHandler
	HealthHandler       *HealthHandler
}
