package services

import (
	"encoding/json"
	"testing"

	"socialhub_backend/internal/models"
	"socialhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_CreatesSinglePendingRequest(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")

	outcome, req, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, SendOutcomeCreated, outcome)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, alice.ID, req.FromUser.ID)
	assert.Equal(t, "Bob", req.ToUser.FullName)

	assert.EqualValues(t, 1, f.countRequests(t, alice.ID, bob.ID))
	assert.EqualValues(t, 1, f.countNotifications(t, bob.ID, models.NotificationTypeFriendRequest))

	list, err := f.notifications.List(f.db, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice sent you a friend request", list[0].Text)

	var payload map[string]uint
	require.NoError(t, json.Unmarshal(list[0].Data, &payload))
	assert.Equal(t, req.ID, payload["request_id"])
	require.NotNil(t, list[0].Actor)
	assert.Equal(t, alice.ID, list[0].Actor.ID)
}

func TestSend_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")

	_, _, err := f.friends.Send(f.db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)

	_, _, err = f.friends.Send(f.db, alice.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, _, err = f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = f.friends.Send(f.db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyPending)

	assert.EqualValues(t, 1, f.countRequests(t, alice.ID, bob.ID))
	assert.EqualValues(t, 1, f.countNotifications(t, bob.ID, models.NotificationTypeFriendRequest))
}

// Users 1 and 2: Send(1,2) then Send(2,1) auto-accepts the first request.
func TestSend_ReciprocalSendAutoAccepts(t *testing.T) {
	f := newFixture(t)
	one := f.user(t, "one@example.com", "One")
	two := f.user(t, "two@example.com", "Two")

	_, first, err := f.friends.Send(f.db, one.ID, two.ID)
	require.NoError(t, err)

	outcome, accepted, err := f.friends.Send(f.db, two.ID, one.ID)
	require.NoError(t, err)
	assert.Equal(t, SendOutcomeMutualAccept, outcome)
	assert.Equal(t, first.ID, accepted.ID)
	assert.Equal(t, "accepted", accepted.Status)

	assert.EqualValues(t, 0, f.countRequests(t, two.ID, one.ID), "no forward row for the reciprocal send")
	assert.EqualValues(t, 1, f.countFriendships(t))
	assert.EqualValues(t, 1, f.countNotifications(t, one.ID, models.NotificationTypeFriendAccept))
	assert.EqualValues(t, 1, f.countNotifications(t, two.ID, models.NotificationTypeFriendAccept))

	friends, err := f.friends.ListFriends(f.db, one.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, two.ID, friends[0].Friend.ID)

	friends, err = f.friends.ListFriends(f.db, two.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, one.ID, friends[0].Friend.ID)

	_, _, err = f.friends.Send(f.db, one.ID, two.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)
}

func TestAccept(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")
	carol := f.user(t, "carol@example.com", "Carol")

	_, req, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)

	t.Run("sender is forbidden", func(t *testing.T) {
		_, err := f.friends.Accept(f.db, alice.ID, req.ID)
		assert.ErrorIs(t, err, apperrors.ErrFriendRequestForbidden)
	})

	t.Run("third party is forbidden", func(t *testing.T) {
		_, err := f.friends.Accept(f.db, carol.ID, req.ID)
		assert.ErrorIs(t, err, apperrors.ErrFriendRequestForbidden)
	})

	t.Run("forbidden attempts change nothing", func(t *testing.T) {
		pending, err := f.friends.ListReceived(f.db, bob.ID, "")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "pending", pending[0].Status)
		assert.EqualValues(t, 0, f.countFriendships(t))
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.friends.Accept(f.db, bob.ID, 9999)
		assert.ErrorIs(t, err, apperrors.ErrFriendRequestNotFound)
	})

	t.Run("recipient accepts", func(t *testing.T) {
		accepted, err := f.friends.Accept(f.db, bob.ID, req.ID)
		require.NoError(t, err)
		assert.Equal(t, "accepted", accepted.Status)
		assert.EqualValues(t, 1, f.countFriendships(t))
		assert.EqualValues(t, 1, f.countNotifications(t, alice.ID, models.NotificationTypeFriendAccept))
		assert.EqualValues(t, 1, f.countNotifications(t, bob.ID, models.NotificationTypeFriendAccept))
	})

	t.Run("second accept is not pending", func(t *testing.T) {
		_, err := f.friends.Accept(f.db, bob.ID, req.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotPending)
		assert.EqualValues(t, 1, f.countFriendships(t))
	})
}

func TestReject_ThenResendRevivesSameRow(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")

	_, req, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = f.friends.Reject(f.db, alice.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestForbidden)

	rejected, err := f.friends.Reject(f.db, bob.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.EqualValues(t, 1, f.countNotifications(t, alice.ID, models.NotificationTypeSystem))

	_, err = f.friends.Reject(f.db, bob.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPending)

	outcome, revived, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, SendOutcomeResubmitted, outcome)
	assert.Equal(t, req.ID, revived.ID)
	assert.Equal(t, "pending", revived.Status)
	assert.False(t, revived.CreatedAt.Before(req.CreatedAt))
	assert.EqualValues(t, 1, f.countRequests(t, alice.ID, bob.ID))
	assert.EqualValues(t, 2, f.countNotifications(t, bob.ID, models.NotificationTypeFriendRequest))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")

	_, req, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = f.friends.Cancel(f.db, bob.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestForbidden)

	cancelled, err := f.friends.Cancel(f.db, alice.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = f.friends.Cancel(f.db, alice.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPending)

	// cancel never notifies
	assert.EqualValues(t, 0, f.countNotifications(t, alice.ID, models.NotificationTypeSystem))
	assert.EqualValues(t, 1, f.countNotifications(t, bob.ID, models.NotificationTypeFriendRequest))

	outcome, revived, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, SendOutcomeResubmitted, outcome)
	assert.Equal(t, req.ID, revived.ID)
}

func TestSend_StaleReverseRequestDoesNotAutoAccept(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")

	_, req, err := f.friends.Send(f.db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.friends.Reject(f.db, bob.ID, req.ID)
	require.NoError(t, err)

	outcome, forward, err := f.friends.Send(f.db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, SendOutcomeCreated, outcome)
	assert.NotEqual(t, req.ID, forward.ID)
	assert.EqualValues(t, 0, f.countFriendships(t))
}

func TestListReceivedAndSent(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com", "Alice")
	bob := f.user(t, "bob@example.com", "Bob")
	carol := f.user(t, "carol@example.com", "Carol")

	_, fromBob, err := f.friends.Send(f.db, bob.ID, alice.ID)
	require.NoError(t, err)
	_, fromCarol, err := f.friends.Send(f.db, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.friends.Reject(f.db, alice.ID, fromBob.ID)
	require.NoError(t, err)

	received, err := f.friends.ListReceived(f.db, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, received, 1, "defaults to pending")
	assert.Equal(t, fromCarol.ID, received[0].ID)

	rejected, err := f.friends.ListReceived(f.db, alice.ID, models.FriendRequestStatusRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, fromBob.ID, rejected[0].ID)

	sent, err := f.friends.ListSent(f.db, carol.ID, "")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, alice.ID, sent[0].ToUser.ID)

	_, err = f.friends.ListSent(f.db, carol.ID, "archived")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestRunInTx_WrapsStorageFaults(t *testing.T) {
	f := newFixture(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = f.friends.Send(f.db, 1, 2)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}
