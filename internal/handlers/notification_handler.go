package handlers

import (
	"net/http"

	"socialhub_backend/internal/services"
	"socialhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

// RegisterRoutes mounts the recipient endpoints and, behind requireStaff,
// the system broadcast.
func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth, requireStaff gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(requireAuth)
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
	}

	admin := r.Group("/admin/notifications")
	admin.Use(requireAuth, requireStaff)
	{
		admin.POST("/system", h.SendSystemNotification)
	}
}

// GetUserNotifications godoc
// @Summary List the caller's notifications
// @Description Newest first, at most 50.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {array} dto.NotificationResponse
// @Router /notifications [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.NotificationListRequest
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	notifications, err := h.notificationService.List(h.GetDB(c), userID, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkAsRead godoc
// @Summary Mark a notification as read
// @Description Marking an already read notification returns it unchanged.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path int true "Notification ID"
// @Success 200 {object} dto.NotificationResponse
// @Failure 403 {object} apperrors.ErrorResponse "Not the recipient"
// @Failure 404 {object} apperrors.ErrorResponse "Notification not found"
// @Router /notifications/{notificationId}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	notificationID, err := ParseParamID(c, "notificationId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	notification, err := h.notificationService.MarkRead(h.GetDB(c), userID, notificationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead godoc
// @Summary Mark every notification of the caller as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MarkAllReadResponse
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// GetUnreadCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// SendSystemNotification godoc
// @Summary Broadcast a system notification
// @Description Staff only. All recipients must exist or nothing is sent.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SystemNotificationRequest true "Recipients and text"
// @Success 201 {object} map[string]int
// @Failure 400 {object} apperrors.ErrorResponse "Invalid body"
// @Failure 403 {object} apperrors.ErrorResponse "Not staff"
// @Failure 404 {object} apperrors.ErrorResponse "Unknown recipient"
// @Router /admin/notifications/system [post]
func (h *NotificationHandler) SendSystemNotification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SystemNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sent, err := h.notificationService.SendSystem(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sent": sent})
}
