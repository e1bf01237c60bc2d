package services

import (
	"errors"
	"fmt"
	"strings"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/models"
	"socialhub_backend/internal/repositories"
	"socialhub_backend/internal/services/dto"
	"socialhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	minBioWords = 100
	maxBioWords = 200
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	ObtainTokens(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenResponse, error)
	Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	fullName := strings.TrimSpace(sanitize(req.FullName))
	if fullName == "" {
		return nil, apperrors.ValidationError(map[string]string{"full_name": "Name cannot be empty"})
	}

	bio := strings.TrimSpace(sanitize(req.Bio))
	if bio != "" {
		if words := len(strings.Fields(bio)); words < minBioWords || words > maxBioWords {
			return nil, apperrors.ValidationError(map[string]string{
				"bio": fmt.Sprintf("Bio must be between %d and %d words (got %d)", minBioWords, maxBioWords, words),
			})
		}
	}

	skills, err := marshalStrings(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	languages, err := marshalStrings(req.Languages)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: hash,
		FullName:     fullName,
		Bio:          bio,
		Age:          req.Age,
		AvatarURL:    strings.TrimSpace(req.AvatarURL),
		Skills:       skills,
		Languages:    languages,
		IsActive:     true,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(db.Statement.Context, "user signed up", "user_id", user.ID)
	return &dto.SignupResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

func (s *AuthServiceImpl) ObtainTokens(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.tokens.GenerateTokenPair(tokenSubject(user))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenResponse{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// Refresh issues a new access token. The user is reloaded so a deactivated
// account cannot keep refreshing.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.ParseToken(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.StorageError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	access, err := s.tokens.GenerateAccessToken(tokenSubject(user))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RefreshResponse{Access: access}, nil
}

func tokenSubject(user *models.User) auth.TokenSubject {
	return auth.TokenSubject{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		IsStaff:  user.IsStaff,
	}
}
