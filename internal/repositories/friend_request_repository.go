package repositories

import (
	"errors"

	"socialhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFriendRequestNotFound   = errors.New("friend request not found")
	ErrFriendRequestNotPending = errors.New("friend request is not pending")
	ErrFriendRequestNotRevived = errors.New("friend request can not be resubmitted from its current status")
)

type FriendRequestRepository interface {
	Create(db *gorm.DB, request *models.FriendRequest) error
	FindByID(db *gorm.DB, id uint) (*models.FriendRequest, error)
	FindByPair(db *gorm.DB, fromUserID, toUserID uint) (*models.FriendRequest, error)
	// TransitionFromPending moves a pending row to status, guarded on the
	// current status so a lost race yields ErrFriendRequestNotPending.
	TransitionFromPending(db *gorm.DB, request *models.FriendRequest, status models.FriendRequestStatus) error
	// Resubmit revives a rejected or cancelled row to pending with fresh timestamps.
	Resubmit(db *gorm.DB, request *models.FriendRequest) error
	ListReceived(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error)
	ListSent(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error)
}

type FriendRequestRepositoryImpl struct{}

func NewFriendRequestRepository() FriendRequestRepository {
	return &FriendRequestRepositoryImpl{}
}

func (r *FriendRequestRepositoryImpl) Create(db *gorm.DB, request *models.FriendRequest) error {
	return db.Create(request).Error
}

func (r *FriendRequestRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRequestRepositoryImpl) FindByPair(db *gorm.DB, fromUserID, toUserID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := db.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRequestRepositoryImpl) TransitionFromPending(db *gorm.DB, request *models.FriendRequest, status models.FriendRequestStatus) error {
	if !models.CanTransition(models.FriendRequestStatusPending, status) {
		return ErrFriendRequestNotPending
	}

	now := db.NowFunc()
	result := db.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", request.ID, models.FriendRequestStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFriendRequestNotPending
	}

	request.Status = status
	request.UpdatedAt = now
	return nil
}

func (r *FriendRequestRepositoryImpl) Resubmit(db *gorm.DB, request *models.FriendRequest) error {
	now := db.NowFunc()
	result := db.Model(&models.FriendRequest{}).
		Where("id = ? AND status IN ?", request.ID, []models.FriendRequestStatus{
			models.FriendRequestStatusRejected,
			models.FriendRequestStatusCancelled,
		}).
		Updates(map[string]interface{}{
			"status":     models.FriendRequestStatusPending,
			"created_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFriendRequestNotRevived
	}

	request.Status = models.FriendRequestStatusPending
	request.CreatedAt = now
	request.UpdatedAt = now
	return nil
}

func (r *FriendRequestRepositoryImpl) ListReceived(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	query := db.Preload("FromUser").Where("to_user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&requests).Error
	return requests, err
}

func (r *FriendRequestRepositoryImpl) ListSent(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	query := db.Preload("ToUser").Where("from_user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&requests).Error
	return requests, err
}
