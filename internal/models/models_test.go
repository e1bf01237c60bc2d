package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair_IsOrderIndependent(t *testing.T) {
	pairs := [][2]uint{{1, 2}, {2, 1}, {10, 3}, {7, 7000}}

	for _, p := range pairs {
		lowAB, highAB := CanonicalPair(p[0], p[1])
		lowBA, highBA := CanonicalPair(p[1], p[0])

		assert.Equal(t, lowAB, lowBA)
		assert.Equal(t, highAB, highBA)
		assert.Less(t, lowAB, highAB)
	}
}

func TestFriendship_BeforeCreateCanonicalizes(t *testing.T) {
	f := &Friendship{UserLowID: 9, UserHighID: 4}

	assert.NoError(t, f.BeforeCreate(nil))
	assert.Equal(t, uint(4), f.UserLowID)
	assert.Equal(t, uint(9), f.UserHighID)
	assert.Equal(t, uint(4), f.FriendOf(9))
	assert.Equal(t, uint(9), f.FriendOf(4))

	assert.ErrorIs(t, (&Friendship{UserLowID: 3, UserHighID: 3}).BeforeCreate(nil), ErrSelfFriendship)
}

func TestFriendRequest_BeforeCreate(t *testing.T) {
	r := &FriendRequest{FromUserID: 1, ToUserID: 2}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, FriendRequestStatusPending, r.Status)

	self := &FriendRequest{FromUserID: 5, ToUserID: 5}
	assert.ErrorIs(t, self.BeforeCreate(nil), ErrSelfFriendRequest)

	accepted := &FriendRequest{FromUserID: 1, ToUserID: 2, Status: FriendRequestStatusAccepted}
	assert.Error(t, accepted.BeforeCreate(nil), "requests are never created accepted")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to FriendRequestStatus
		want     bool
	}{
		{FriendRequestStatusPending, FriendRequestStatusAccepted, true},
		{FriendRequestStatusPending, FriendRequestStatusRejected, true},
		{FriendRequestStatusPending, FriendRequestStatusCancelled, true},
		{FriendRequestStatusRejected, FriendRequestStatusPending, true},
		{FriendRequestStatusCancelled, FriendRequestStatusPending, true},
		{FriendRequestStatusAccepted, FriendRequestStatusPending, false},
		{FriendRequestStatusAccepted, FriendRequestStatusRejected, false},
		{FriendRequestStatusRejected, FriendRequestStatusAccepted, false},
		{FriendRequestStatusPending, FriendRequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestUser_NormalizesEmailAndDisplayName(t *testing.T) {
	age := 30
	u := &User{Email: "  Alice@Example.COM ", Age: &age}

	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice", u.DisplayName())

	u.FullName = "Alice Liddell"
	assert.Equal(t, "Alice Liddell", u.DisplayName())

	tooOld := 121
	assert.Error(t, (&User{Email: "x@y.z", Age: &tooOld}).BeforeCreate(nil))
}
