package services

import (
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

// SendOutcome names the branch Send resolved to.
type SendOutcome string

const (
	SendOutcomeCreated     SendOutcome = "created"
	SendOutcomeResubmitted SendOutcome = "resubmitted"
	// SendOutcomeMutualAccept: the target already had a pending request to
	// the sender, so Send accepted that request instead of opening a new one.
	SendOutcomeMutualAccept SendOutcome = "mutual_accept"
)

type FriendService interface {
	Send(db *gorm.DB, senderID, targetID uint) (SendOutcome, *dto.FriendRequestResponse, error)
	Accept(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error)
	Reject(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error)
	Cancel(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error)
	ListReceived(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]*dto.FriendRequestResponse, error)
	ListSent(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]*dto.FriendRequestResponse, error)
	ListFriends(db *gorm.DB, userID uint) ([]*dto.FriendshipResponse, error)
}

type friendService struct {
	requestRepo    repositories.FriendRequestRepository
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
	users          UserDirectory
	notifications  NotificationService
}

func NewFriendService(
	requestRepo repositories.FriendRequestRepository,
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	users UserDirectory,
	notifications NotificationService,
) FriendService {
	return &friendService{
		requestRepo:    requestRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		users:          users,
		notifications:  notifications,
	}
}

// ---------------- Transitions ----------------

func (s *friendService) Send(db *gorm.DB, senderID, targetID uint) (SendOutcome, *dto.FriendRequestResponse, error) {
	if senderID == targetID {
		metrics.RecordFriendTransition("send", "invalid_target")
		return "", nil, apperrors.ErrInvalidTarget
	}

	var (
		outcome SendOutcome
		request *models.FriendRequest
	)

	err := runInTx(db, "friends.send", func(tx *gorm.DB) error {
		exists, err := s.users.Exists(tx, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrUserNotFound
		}

		friends, err := s.friendshipRepo.Exists(tx, senderID, targetID)
		if err != nil {
			return err
		}
		if friends {
			return apperrors.ErrAlreadyFriends
		}

		reverse, err := s.requestRepo.FindByPair(tx, targetID, senderID)
		switch {
		case err == nil && reverse.IsPending():
			if err := s.accept(tx, reverse); err != nil {
				return err
			}
			outcome, request = SendOutcomeMutualAccept, reverse
			return nil
		case err != nil && !errors.Is(err, repositories.ErrFriendRequestNotFound):
			return err
		}

		forward, err := s.requestRepo.FindByPair(tx, senderID, targetID)
		switch {
		case errors.Is(err, repositories.ErrFriendRequestNotFound):
			forward = &models.FriendRequest{FromUserID: senderID, ToUserID: targetID}
			if err := s.requestRepo.Create(tx, forward); err != nil {
				return err
			}
			outcome = SendOutcomeCreated
		case err != nil:
			return err
		case forward.Status == models.FriendRequestStatusPending:
			return apperrors.ErrRequestAlreadyPending
		case forward.Status == models.FriendRequestStatusAccepted:
			// an accepted row always has its edge; reaching here means the
			// edge check above raced with a concurrent accept
			return apperrors.ErrAlreadyFriends
		default:
			if err := s.requestRepo.Resubmit(tx, forward); err != nil {
				if errors.Is(err, repositories.ErrFriendRequestNotRevived) {
					return apperrors.ErrRequestAlreadyPending
				}
				return err
			}
			outcome = SendOutcomeResubmitted
		}

		sender, err := s.userRepo.FindByID(tx, senderID)
		if err != nil {
			return err
		}
		_, err = s.notifications.Append(tx, targetID, &senderID,
			models.NotificationTypeFriendRequest,
			fmt.Sprintf("%s sent you a friend request", sender.DisplayName()),
			requestPayload(forward.ID),
		)
		if err != nil {
			return err
		}
		request = forward
		return nil
	})
	if err != nil {
		metrics.RecordFriendTransition("send", errorOutcome(err))
		return "", nil, err
	}

	metrics.RecordFriendTransition("send", string(outcome))
	logger.CtxInfo(db.Statement.Context, "friend request sent",
		"request_id", request.ID, "from_user_id", senderID, "to_user_id", targetID, "outcome", outcome)

	resp, err := s.loadRequestResponse(db, request.ID)
	if err != nil {
		return "", nil, err
	}
	return outcome, resp, nil
}

func (s *friendService) Accept(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error) {
	return s.transition(db, "accept", actorID, requestID, func(tx *gorm.DB, request *models.FriendRequest) error {
		if request.ToUserID != actorID {
			return apperrors.ErrFriendRequestForbidden
		}
		return s.accept(tx, request)
	})
}

func (s *friendService) Reject(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error) {
	return s.transition(db, "reject", actorID, requestID, func(tx *gorm.DB, request *models.FriendRequest) error {
		if request.ToUserID != actorID {
			return apperrors.ErrFriendRequestForbidden
		}
		if err := s.moveFromPending(tx, request, models.FriendRequestStatusRejected); err != nil {
			return err
		}

		recipient, err := s.userRepo.FindByID(tx, request.ToUserID)
		if err != nil {
			return err
		}
		_, err = s.notifications.Append(tx, request.FromUserID, &request.ToUserID,
			models.NotificationTypeSystem,
			fmt.Sprintf("%s declined your friend request", recipient.DisplayName()),
			requestPayload(request.ID),
		)
		return err
	})
}

func (s *friendService) Cancel(db *gorm.DB, actorID, requestID uint) (*dto.FriendRequestResponse, error) {
	return s.transition(db, "cancel", actorID, requestID, func(tx *gorm.DB, request *models.FriendRequest) error {
		if request.FromUserID != actorID {
			return apperrors.ErrFriendRequestForbidden
		}
		return s.moveFromPending(tx, request, models.FriendRequestStatusCancelled)
	})
}

// transition loads the request inside a transaction and hands it to apply.
func (s *friendService) transition(
	db *gorm.DB,
	operation string,
	actorID, requestID uint,
	apply func(tx *gorm.DB, request *models.FriendRequest) error,
) (*dto.FriendRequestResponse, error) {
	var request *models.FriendRequest

	err := runInTx(db, "friends."+operation, func(tx *gorm.DB) error {
		found, err := s.requestRepo.FindByID(tx, requestID)
		if err != nil {
			if errors.Is(err, repositories.ErrFriendRequestNotFound) {
				return apperrors.ErrFriendRequestNotFound
			}
			return err
		}
		if err := apply(tx, found); err != nil {
			return err
		}
		request = found
		return nil
	})
	if err != nil {
		metrics.RecordFriendTransition(operation, errorOutcome(err))
		return nil, err
	}

	metrics.RecordFriendTransition(operation, string(request.Status))
	logger.CtxInfo(db.Statement.Context, "friend request "+operation,
		"request_id", request.ID, "actor_id", actorID, "status", request.Status)

	return s.loadRequestResponse(db, request.ID)
}

// accept flips a pending request to accepted, creates the edge and notifies
// both parties. Shared by Accept and the mutual branch of Send.
func (s *friendService) accept(tx *gorm.DB, request *models.FriendRequest) error {
	if err := s.moveFromPending(tx, request, models.FriendRequestStatusAccepted); err != nil {
		return err
	}

	if _, _, err := s.friendshipRepo.GetOrCreate(tx, request.FromUserID, request.ToUserID); err != nil {
		return err
	}

	users, err := s.userRepo.FindByIDs(tx, []uint{request.FromUserID, request.ToUserID})
	if err != nil {
		return err
	}
	sender, recipient := users[request.FromUserID], users[request.ToUserID]
	if sender == nil || recipient == nil {
		return apperrors.ErrUserNotFound
	}

	payload := requestPayload(request.ID)
	if _, err := s.notifications.Append(tx, request.FromUserID, &request.ToUserID,
		models.NotificationTypeFriendAccept,
		fmt.Sprintf("%s accepted your friend request", recipient.DisplayName()),
		payload,
	); err != nil {
		return err
	}
	_, err = s.notifications.Append(tx, request.ToUserID, &request.FromUserID,
		models.NotificationTypeFriendAccept,
		fmt.Sprintf("You are now friends with %s", sender.DisplayName()),
		payload,
	)
	return err
}

func (s *friendService) moveFromPending(tx *gorm.DB, request *models.FriendRequest, status models.FriendRequestStatus) error {
	if !request.IsPending() {
		return apperrors.ErrNotPending
	}
	if err := s.requestRepo.TransitionFromPending(tx, request, status); err != nil {
		if errors.Is(err, repositories.ErrFriendRequestNotPending) {
			return apperrors.ErrNotPending
		}
		return err
	}
	return nil
}

// ---------------- Queries ----------------

func (s *friendService) ListReceived(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]*dto.FriendRequestResponse, error) {
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListReceived(db, userID, status)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return s.buildRequestResponses(db, requests)
}

func (s *friendService) ListSent(db *gorm.DB, userID uint, status models.FriendRequestStatus) ([]*dto.FriendRequestResponse, error) {
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListSent(db, userID, status)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return s.buildRequestResponses(db, requests)
}

func (s *friendService) ListFriends(db *gorm.DB, userID uint) ([]*dto.FriendshipResponse, error) {
	friendships, err := s.friendshipRepo.ListFor(db, userID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	ids := make([]uint, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].FriendOf(userID))
	}
	users, err := s.userRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	result := make([]*dto.FriendshipResponse, 0, len(friendships))
	for i := range friendships {
		friendID := friendships[i].FriendOf(userID)
		friend := toUserSummary(users[friendID])
		if friend == nil {
			friend = &dto.UserSummary{ID: friendID}
		}
		result = append(result, &dto.FriendshipResponse{
			ID:        friendships[i].ID,
			Friend:    friend,
			CreatedAt: friendships[i].CreatedAt,
		})
	}
	return result, nil
}

// ---------------- Helpers ----------------

func (s *friendService) loadRequestResponse(db *gorm.DB, requestID uint) (*dto.FriendRequestResponse, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrFriendRequestNotFound) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, apperrors.StorageError(err)
	}

	responses, err := s.buildRequestResponses(db, []models.FriendRequest{*request})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// buildRequestResponses fills both user cards with one lookup for the batch.
func (s *friendService) buildRequestResponses(db *gorm.DB, requests []models.FriendRequest) ([]*dto.FriendRequestResponse, error) {
	ids := make([]uint, 0, len(requests)*2)
	for i := range requests {
		ids = append(ids, requests[i].FromUserID, requests[i].ToUserID)
	}
	users, err := s.userRepo.FindByIDs(db, uniqueIDs(ids))
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	result := make([]*dto.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		result = append(result, &dto.FriendRequestResponse{
			ID:        r.ID,
			FromUser:  summaryOrID(users, r.FromUserID),
			ToUser:    summaryOrID(users, r.ToUserID),
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return result, nil
}

func summaryOrID(users map[uint]*models.User, id uint) *dto.UserSummary {
	if summary := toUserSummary(users[id]); summary != nil {
		return summary
	}
	return &dto.UserSummary{ID: id}
}

// normalizeStatusFilter defaults an empty filter to pending.
func normalizeStatusFilter(status models.FriendRequestStatus) (models.FriendRequestStatus, error) {
	if status == "" {
		return models.FriendRequestStatusPending, nil
	}
	if !status.IsValid() {
		return "", apperrors.ErrInvalidStatus("friends", fmt.Sprintf("unknown friend request status %q", status))
	}
	return status, nil
}

func requestPayload(requestID uint) map[string]interface{} {
	return map[string]interface{}{"request_id": requestID}
}

// errorOutcome turns an error into a bounded metrics label.
func errorOutcome(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "error"
}
