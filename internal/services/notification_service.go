package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/models"
	"socialhub_backend/internal/repositories"
	"socialhub_backend/internal/services/dto"
	"socialhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MaxNotificationListLimit bounds every notification listing.
const MaxNotificationListLimit = 50

type NotificationService interface {
	// Append inserts one notification using db as given, so callers inside a
	// transaction pass their tx.
	Append(db *gorm.DB, recipientID uint, actorID *uint, notificationType models.NotificationType, text string, data map[string]interface{}) (*models.Notification, error)
	List(db *gorm.DB, userID uint, limit int) ([]*dto.NotificationResponse, error)
	MarkRead(db *gorm.DB, userID, notificationID uint) (*dto.NotificationResponse, error)
	MarkAllRead(db *gorm.DB, userID uint) (int64, error)
	GetUnreadCount(db *gorm.DB, userID uint) (int64, error)
	SendSystem(db *gorm.DB, actorID uint, req *dto.SystemNotificationRequest) (int, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	listLimit        int
}

// NewNotificationService caps listLimit at MaxNotificationListLimit.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	listLimit int,
) NotificationService {
	if listLimit <= 0 || listLimit > MaxNotificationListLimit {
		listLimit = MaxNotificationListLimit
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		listLimit:        listLimit,
	}
}

func (s *notificationService) Append(
	db *gorm.DB,
	recipientID uint,
	actorID *uint,
	notificationType models.NotificationType,
	text string,
	data map[string]interface{},
) (*models.Notification, error) {
	payload, err := marshalJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	notification := &models.Notification{
		RecipientUserID: recipientID,
		ActorUserID:     actorID,
		Type:            notificationType,
		Text:            text,
		Data:            payload,
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, err
	}

	metrics.RecordNotificationCreated(string(notificationType))
	return notification, nil
}

func (s *notificationService) List(db *gorm.DB, userID uint, limit int) ([]*dto.NotificationResponse, error) {
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	notifications, err := s.notificationRepo.ListForUser(db, userID, limit)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	result := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, buildNotificationResponse(&notifications[i]))
	}
	return result, nil
}

// MarkRead is idempotent: a notification that is already read is returned unchanged.
func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID uint) (*dto.NotificationResponse, error) {
	var notification *models.Notification

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := s.notificationRepo.FindByID(tx, notificationID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotificationNotFound) {
				return apperrors.ErrNotificationNotFound
			}
			return err
		}
		if found.RecipientUserID != userID {
			return apperrors.ErrNotificationForbidden
		}

		if !found.IsRead {
			if err := s.notificationRepo.MarkAsRead(tx, found.ID); err != nil {
				return err
			}
			if found, err = s.notificationRepo.FindByID(tx, found.ID); err != nil {
				return err
			}
		}
		notification = found
		return nil
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.StorageError(err)
	}

	return buildNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(db *gorm.DB, userID uint) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, apperrors.StorageError(err)
	}
	return updated, nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID uint) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, apperrors.StorageError(err)
	}
	return count, nil
}

// SendSystem fans a staff-authored system notice out to every recipient in
// one transaction. Unknown recipients abort the whole batch.
func (s *notificationService) SendSystem(db *gorm.DB, actorID uint, req *dto.SystemNotificationRequest) (int, error) {
	payload, err := marshalJSON(req.Data)
	if err != nil {
		return 0, apperrors.NewBadRequestError("data must be a JSON object")
	}
	text := sanitize(req.Text)

	recipients := uniqueIDs(req.RecipientIDs)
	err = runInTx(db, "notifications.send_system", func(tx *gorm.DB) error {
		users, err := s.userRepo.FindByIDs(tx, recipients)
		if err != nil {
			return err
		}
		if len(users) != len(recipients) {
			return apperrors.ErrUserNotFound
		}

		batch := make([]*models.Notification, 0, len(recipients))
		for _, recipientID := range recipients {
			batch = append(batch, &models.Notification{
				RecipientUserID: recipientID,
				ActorUserID:     &actorID,
				Type:            models.NotificationTypeSystem,
				Text:            text,
				Data:            payload,
			})
		}
		return s.notificationRepo.CreateBulk(tx, batch)
	})
	if err != nil {
		return 0, err
	}

	for range recipients {
		metrics.RecordNotificationCreated(string(models.NotificationTypeSystem))
	}
	logger.CtxInfo(db.Statement.Context, "system notification sent",
		"actor_id", actorID, "recipients", len(recipients))
	return len(recipients), nil
}

func buildNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	var data json.RawMessage
	if len(n.Data) > 0 {
		data = json.RawMessage(n.Data)
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Text:      n.Text,
		Data:      data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		Actor:     toUserSummary(n.Actor),
		CreatedAt: n.CreatedAt,
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
