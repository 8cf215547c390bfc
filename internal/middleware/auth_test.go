package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

const testSecret = "test-secret"

type staticUserRepo struct {
	user *models.User
}

func (s *staticUserRepo) CreateUser(context.Context, *models.User) error { return nil }

func (s *staticUserRepo) GetUserByHandle(_ context.Context, handle string) (*models.User, error) {
	if s.user != nil && s.user.Handle == handle {
		return s.user, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *staticUserRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

func (s *staticUserRepo) GetUserByUserID(context.Context, string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

func (s *staticUserRepo) HandleExists(context.Context, string) (bool, error) { return false, nil }

func (s *staticUserRepo) UpdateProfile(context.Context, string, map[string]string) error {
	return nil
}

func (s *staticUserRepo) UpdateImageURL(context.Context, string, string) error { return nil }

func signToken(t *testing.T, handle, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func runMiddleware(authHeader string, repo repositories.UserRepository) (echo.Context, error, bool) {
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return nil
	}

	mw := middleware.AuthMiddleware(nil, repo, testSecret)
	err := mw(next)(c)
	return c, err, nextCalled
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	repo := &staticUserRepo{user: &models.User{Handle: "alice", ImageURL: "img.png"}}
	token := signToken(t, "alice", testSecret, time.Now().Add(time.Hour))

	c, err, nextCalled := runMiddleware("Bearer "+token, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("next handler was not called")
	}
	if got := c.Get(middleware.ContextUserHandle); got != "alice" {
		t.Errorf("context handle = %v", got)
	}
	if got := c.Get(middleware.ContextUserImage); got != "img.png" {
		t.Errorf("context image = %v", got)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	repo := &staticUserRepo{user: &models.User{Handle: "alice"}}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "alice", "other-secret", time.Now().Add(time.Hour))},
		{"expired token", "Bearer " + signToken(t, "alice", testSecret, time.Now().Add(-time.Hour))},
		{"unknown handle", "Bearer " + signToken(t, "ghost", testSecret, time.Now().Add(time.Hour))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err, nextCalled := runMiddleware(tc.header, repo)
			if nextCalled {
				t.Fatal("next handler must not run")
			}
			appErr, ok := err.(*apperrors.Error)
			if !ok {
				t.Fatalf("error = %v, want *apperrors.Error", err)
			}
			if appErr.Status != http.StatusForbidden {
				t.Errorf("status = %d, want 403", appErr.Status)
			}
		})
	}
}
