package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateStreak(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Parallel()

	setupRouter := func(tokenService *services.TokenService) *gin.Engine {
		router := gin.New()
		router.Use(AuthMiddleware(tokenService))
		router.GET("/protected", func(c *gin.Context) {
			userID, ok := GetUserID(c)
			if !ok {
				c.String(http.StatusInternalServerError, "UserID not found in context")
				return
			}
			c.String(http.StatusOK, "Hello "+userID)
		})
		return router
	}

	secret := "test-secret-middleware"
	issuer := "test-issuer"

	t.Run("Success: Valid Token", func(t *testing.T) {
		t.Parallel()
		mockRepo := new(MockUserRepo)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, mockRepo)
		router := setupRouter(tokenService)

		user := &domain.User{ID: "user-123", Username: "alice"}
		mockRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		validToken, err := tokenService.GenerateToken(user)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello user-123", w.Body.String())
	})

	t.Run("Fail: Missing Authorization Header", func(t *testing.T) {
		t.Parallel()
		tokenService := services.NewTokenService(secret, issuer, time.Hour, new(MockUserRepo))
		router := setupRouter(tokenService)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization header required")
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Fail: Invalid Header Format", func(t *testing.T) {
		t.Parallel()
		tokenService := services.NewTokenService(secret, issuer, time.Hour, new(MockUserRepo))
		router := setupRouter(tokenService)

		formats := []string{
			"Bearer",
			"Token 12345",
			"Bearer12345",
			"Bearer ",
			"Bearer a b",
		}

		for _, h := range formats {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", h)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "Should fail for header: "+h)
		}
	})

	t.Run("Fail: Token with Wrong Signature (Tampered)", func(t *testing.T) {
		t.Parallel()
		mockRepo := new(MockUserRepo)
		serviceMiddleware := services.NewTokenService(secret, issuer, time.Hour, mockRepo)
		serviceAttacker := services.NewTokenService("wrong-secret", issuer, time.Hour, mockRepo)

		router := setupRouter(serviceMiddleware)
		badToken, _ := serviceAttacker.GenerateToken(&domain.User{ID: "attacker", Username: "mallory"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+badToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Expired Token", func(t *testing.T) {
		t.Parallel()
		expiredService := services.NewTokenService(secret, issuer, -time.Second, new(MockUserRepo))
		router := setupRouter(expiredService)

		expiredToken, _ := expiredService.GenerateToken(&domain.User{ID: "user-expired", Username: "bob"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+expiredToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("Fail: User no longer exists", func(t *testing.T) {
		t.Parallel()
		mockRepo := new(MockUserRepo)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, mockRepo)
		router := setupRouter(tokenService)

		mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
		token, _ := tokenService.GenerateToken(&domain.User{ID: "ghost", Username: "ghost"})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
