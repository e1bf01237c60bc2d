package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialhub_backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	assert.Equal(t, incoming, serve(router, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\r\n")
	minted := serve(router, req).Header().Get(RequestIDHeader)
	assert.NotEqual(t, "not a uuid\r\n", minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware("https://a.example.com, https://b.example.com"))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://b.example.com")
	rec := serve(router, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://b.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.Empty(t, serve(router, req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://a.example.com")
	rec = serve(router, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://a.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-test-secret-32-bytes-long", time.Minute, time.Hour)

	router := gin.New()
	router.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": c.GetString(RoleKey)})
	})
	router.GET("/admin", AuthMiddleware(tokens), RequirePermission("notifications:broadcast"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	user, err := tokens.GenerateTokenPair(auth.TokenSubject{UserID: 7, Email: "u@example.com"})
	require.NoError(t, err)
	staff, err := tokens.GenerateTokenPair(auth.TokenSubject{UserID: 8, Email: "s@example.com", IsStaff: true})
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Token " + user.Access, http.StatusUnauthorized},
		{"refresh token", "/me", "Bearer " + user.Refresh, http.StatusUnauthorized},
		{"access token", "/me", "Bearer " + user.Access, http.StatusOK},
		{"user on admin route", "/admin", "Bearer " + user.Access, http.StatusForbidden},
		{"staff on admin route", "/admin", "Bearer " + staff.Access, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, serve(router, req).Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+user.Access)
	rec := serve(router, req)
	assert.JSONEq(t, `{"id":7,"role":"user"}`, rec.Body.String())
}
