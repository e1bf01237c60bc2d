package repositories

import (
	"errors"

	"socialhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFriendshipNotFound = errors.New("friendship not found")

type FriendshipRepository interface {
	Exists(db *gorm.DB, userA, userB uint) (bool, error)
	Find(db *gorm.DB, userA, userB uint) (*models.Friendship, error)
	// GetOrCreate inserts the canonical edge if it is missing. A concurrent
	// creator wins silently: the loser reads back the winner's row.
	GetOrCreate(db *gorm.DB, userA, userB uint) (friendship *models.Friendship, created bool, err error)
	ListFor(db *gorm.DB, userID uint) ([]models.Friendship, error)
}

type FriendshipRepositoryImpl struct{}

func NewFriendshipRepository() FriendshipRepository {
	return &FriendshipRepositoryImpl{}
}

func (r *FriendshipRepositoryImpl) Exists(db *gorm.DB, userA, userB uint) (bool, error) {
	low, high := models.CanonicalPair(userA, userB)

	var count int64
	err := db.Model(&models.Friendship{}).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendshipRepositoryImpl) Find(db *gorm.DB, userA, userB uint) (*models.Friendship, error) {
	low, high := models.CanonicalPair(userA, userB)

	var friendship models.Friendship
	err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFriendshipNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *FriendshipRepositoryImpl) GetOrCreate(db *gorm.DB, userA, userB uint) (*models.Friendship, bool, error) {
	friendship := models.NewFriendship(userA, userB)

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
		DoNothing: true,
	}).Create(friendship)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return friendship, true, nil
	}

	existing, err := r.Find(db, userA, userB)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *FriendshipRepositoryImpl) ListFor(db *gorm.DB, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := db.Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&friendships).Error
	return friendships, err
}
