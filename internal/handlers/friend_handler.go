package handlers

import (
	"net/http"

	"socialhub_backend/internal/models"
	"socialhub_backend/internal/services"
	"socialhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FriendHandler struct {
	*BaseHandler
	friendService services.FriendService
}

func NewFriendHandler(base *BaseHandler, friendService services.FriendService) *FriendHandler {
	return &FriendHandler{
		BaseHandler:   base,
		friendService: friendService,
	}
}

func (h *FriendHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	friends := r.Group("/friends")
	friends.Use(requireAuth)
	{
		friends.GET("", h.ListFriends)
		friends.POST("/requests", h.SendRequest)
		friends.GET("/requests/received", h.ListReceived)
		friends.GET("/requests/sent", h.ListSent)
		friends.POST("/requests/:requestId/accept", h.AcceptRequest)
		friends.POST("/requests/:requestId/reject", h.RejectRequest)
		friends.POST("/requests/:requestId/cancel", h.CancelRequest)
	}
}

// SendRequest godoc
// @Summary Send a friend request
// @Description Opens or resubmits a request to target_id. If the target already has a pending request to the caller, that request is accepted instead (200, outcome mutual_accept).
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFriendRequestRequest true "Target user"
// @Success 201 {object} dto.SendFriendRequestResponse
// @Success 200 {object} dto.SendFriendRequestResponse
// @Failure 400 {object} apperrors.ErrorResponse "Invalid body or self request"
// @Failure 404 {object} apperrors.ErrorResponse "Target not found"
// @Failure 409 {object} apperrors.ErrorResponse "Already friends or already pending"
// @Router /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	outcome, request, err := h.friendService.Send(h.GetDB(c), userID, req.TargetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if outcome == services.SendOutcomeMutualAccept {
		status = http.StatusOK
	}
	c.JSON(status, dto.SendFriendRequestResponse{
		Outcome: string(outcome),
		Request: request,
	})
}

// AcceptRequest godoc
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} dto.FriendRequestResponse
// @Failure 403 {object} apperrors.ErrorResponse "Caller is not the recipient"
// @Failure 404 {object} apperrors.ErrorResponse "Request not found"
// @Failure 409 {object} apperrors.ErrorResponse "Request is not pending"
// @Router /friends/requests/{requestId}/accept [post]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	h.transition(c, h.friendService.Accept)
}

// RejectRequest godoc
// @Summary Reject a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} dto.FriendRequestResponse
// @Failure 403 {object} apperrors.ErrorResponse "Caller is not the recipient"
// @Failure 404 {object} apperrors.ErrorResponse "Request not found"
// @Failure 409 {object} apperrors.ErrorResponse "Request is not pending"
// @Router /friends/requests/{requestId}/reject [post]
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	h.transition(c, h.friendService.Reject)
}

// CancelRequest godoc
// @Summary Cancel a sent friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Friend request ID"
// @Success 200 {object} dto.FriendRequestResponse
// @Failure 403 {object} apperrors.ErrorResponse "Caller is not the sender"
// @Failure 404 {object} apperrors.ErrorResponse "Request not found"
// @Failure 409 {object} apperrors.ErrorResponse "Request is not pending"
// @Router /friends/requests/{requestId}/cancel [post]
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	h.transition(c, h.friendService.Cancel)
}

func (h *FriendHandler) transition(c *gin.Context, apply func(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requestID, err := ParseParamID(c, "requestId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	request, err := apply(h.GetDB(c), userID, requestID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListReceived godoc
// @Summary Friend requests addressed to the caller
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending (default), accepted, rejected or cancelled"
// @Success 200 {array} dto.FriendRequestResponse
// @Failure 400 {object} apperrors.ErrorResponse "Unknown status"
// @Router /friends/requests/received [get]
func (h *FriendHandler) ListReceived(c *gin.Context) {
	h.list(c, h.friendService.ListReceived)
}

// ListSent godoc
// @Summary Friend requests sent by the caller
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending (default), accepted, rejected or cancelled"
// @Success 200 {array} dto.FriendRequestResponse
// @Failure 400 {object} apperrors.ErrorResponse "Unknown status"
// @Router /friends/requests/sent [get]
func (h *FriendHandler) ListSent(c *gin.Context) {
	h.list(c, h.friendService.ListSent)
}

func (h *FriendHandler) list(c *gin.Context, fetch func(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]*dto.FriendRequestResponse, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FriendRequestListRequest
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	requests, err := fetch(h.GetDB(c), userID, models.FriendRequestStatus(query.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListFriends godoc
// @Summary List the caller's friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FriendshipResponse
// @Router /friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}
