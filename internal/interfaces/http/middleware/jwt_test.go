package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirehub/backend/internal/infrastructure/auth"
	"github.com/hirehub/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "hirehub-test",
		MaxRefreshCount:        10,
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService) (string, auth.GenerateTokenInput) {
	t.Helper()

	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "hiring-manager",
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair.AccessToken, input
}

func authedRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/hires", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/hires", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, input := issueToken(t, jwtService)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/hires", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, input.UserID.String(), GetJWTUserID(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := authedRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_RejectsBadCredentials(t *testing.T) {
	jwtService := newTestJWTService()
	router := newProtectedRouter(jwtService)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "INVALID_TOKEN"},
		{"no bearer prefix", "Token abc123", "INVALID_TOKEN"},
		{"empty token", "Bearer ", "INVALID_TOKEN"},
		{"garbage token", "Bearer not.a.jwt", "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := authedRequest(router, tc.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "hirehub-test",
	})
	token, _ := issueToken(t, expiredService)

	router := newProtectedRouter(expiredService)
	w := authedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_WrongSigningKey(t *testing.T) {
	otherService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-32-char-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "hirehub-test",
	})
	token, _ := issueToken(t, otherService)

	router := newProtectedRouter(newTestJWTService())
	w := authedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubBlacklist struct {
	blacklisted map[string]bool
	err         error
}

func (s *stubBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if s.blacklisted == nil {
		s.blacklisted = make(map[string]bool)
	}
	s.blacklisted[jti] = true
	return nil
}

func (s *stubBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.blacklisted[jti], nil
}

func newBlacklistRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}))
	router.GET("/api/v1/hires", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := issueToken(t, jwtService)

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)

	blacklist := &stubBlacklist{}
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	router := newBlacklistRouter(jwtService, blacklist)
	w := authedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_BlacklistFailureFailsOpen(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := issueToken(t, jwtService)

	// A redis outage must not lock every valid token out of the API
	blacklist := &stubBlacklist{err: errors.New("connection refused")}
	router := newBlacklistRouter(jwtService, blacklist)
	w := authedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_OnErrorOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		OnError: func(c *gin.Context, err error) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"custom": true})
		},
	}))
	router.GET("/api/v1/hires", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := authedRequest(router, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "custom")
}
