package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("send: %w", ErrAlreadyFriends)

	assert.True(t, Is(err, ErrAlreadyFriends))
	assert.False(t, Is(err, ErrRequestAlreadyPending))

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAlreadyFriends, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestWithDetails_DoesNotMutateSharedError(t *testing.T) {
	withDetails := ErrNotPending.WithDetails(map[string]string{"status": "accepted"})

	assert.Nil(t, ErrNotPending.Details)
	assert.NotNil(t, withDetails.Details)
}

func TestStorageError_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := StorageError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestMarshalJSON_HidesCause(t *testing.T) {
	body, err := json.Marshal(InternalError(errors.New("secret dsn")))
	require.NoError(t, err)

	assert.NotContains(t, string(body), "secret dsn")
	assert.Contains(t, string(body), string(CodeInternalError))
}

func TestHandleError_RendersStatusAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"forbidden", ErrFriendRequestForbidden, http.StatusForbidden, CodeForbidden},
		{"not found", ErrNotificationNotFound, http.StatusNotFound, CodeNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Error struct {
					Code ErrorCode `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
