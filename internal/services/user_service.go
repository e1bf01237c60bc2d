package services

import (
	"errors"

	"socialhub_backend/internal/models"
	"socialhub_backend/internal/repositories"
	"socialhub_backend/internal/services/dto"
	"socialhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultUserSearchLimit = 20

// UserDirectory is the read-only view of users the friend workflow needs.
type UserDirectory interface {
	Exists(db *gorm.DB, userID uint) (bool, error)
	Get(db *gorm.DB, userID uint) (*dto.UserSummary, error)
}

type UserService interface {
	UserDirectory
	GetMe(db *gorm.DB, userID uint) (*dto.UserResponse, error)
	GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error)
	SearchUsers(db *gorm.DB, req *dto.UserSearchRequest) ([]*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Exists(db *gorm.DB, userID uint) (bool, error) {
	exists, err := s.userRepo.Exists(db, userID)
	if err != nil {
		return false, apperrors.StorageError(err)
	}
	return exists, nil
}

func (s *userService) Get(db *gorm.DB, userID uint) (*dto.UserSummary, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return toUserSummary(user), nil
}

func (s *userService) GetMe(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return buildUserResponse(user, true), nil
}

func (s *userService) GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserNotFound
	}
	return buildUserResponse(user, false), nil
}

func (s *userService) SearchUsers(db *gorm.DB, req *dto.UserSearchRequest) ([]*dto.UserResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultUserSearchLimit
	}

	users, err := s.userRepo.Search(db, req.Search, limit)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	result := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, buildUserResponse(&users[i], false))
	}
	return result, nil
}

func (s *userService) findUser(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StorageError(err)
	}
	return user, nil
}

// buildUserResponse hides the email and staff flag unless the caller is the owner.
func buildUserResponse(user *models.User, self bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Bio:       user.Bio,
		Age:       user.Age,
		AvatarURL: user.AvatarURL,
		Skills:    unmarshalStrings(user.Skills),
		Languages: unmarshalStrings(user.Languages),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
	if self {
		resp.Email = user.Email
		resp.IsStaff = user.IsStaff
	}
	return resp
}
