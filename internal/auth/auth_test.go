package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_minimum_32_chars_long"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)
	assert.True(t, CheckPasswordHash("s3cretpass", hash))
	assert.False(t, CheckPasswordHash("wrongpass1", hash))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "abcdef12", nil},
		{"too short", "ab1", ErrPasswordTooShort},
		{"too long", string(make([]byte, 73)), ErrPasswordTooLong},
		{"no digit", "abcdefgh", ErrPasswordTooWeak},
		{"no letter", "12345678", ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidatePassword(tt.password), tt.want)
		})
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 5*time.Minute, 24*time.Hour)
	subject := TokenSubject{UserID: 42, Email: "alice@example.com", FullName: "Alice", IsStaff: true}

	pair, err := m.GenerateTokenPair(subject)
	require.NoError(t, err)

	claims, err := m.ParseToken(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.FullName)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)

	refresh, err := m.ParseToken(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)

	_, err = m.ParseToken(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseToken_Invalid(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	other := NewTokenManager("another_secret_key_minimum_32_chars", time.Minute, time.Hour)
	foreign, err := other.GenerateAccessToken(TokenSubject{UserID: 1})
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, TokenType: TokenTypeAccess})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "invalid.token.here"},
		{"other secret", foreign},
		{"alg none", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseToken(tt.token, TokenTypeAccess)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, err := m.GenerateAccessToken(TokenSubject{UserID: 7})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleStaff, "notifications:broadcast"))
	assert.False(t, HasPermission(RoleUser, "notifications:broadcast"))
	assert.False(t, HasPermission("ghost", "users:read"))
	assert.Equal(t, RoleUser, RoleForStaff(false))
}
