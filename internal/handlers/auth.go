package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
	"github.com/kamaumbugua/socialnet/backend/validators"
)

// AuthService creates identities in the external auth service
type AuthService interface {
	CreateIdentity(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles signup and login
type AuthHandler struct {
	userRepository  repositories.UserRepository
	authService     AuthService
	jwtSecret       string
	defaultImageURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, authService AuthService, jwtSecret, defaultImageURL string) *AuthHandler {
	return &AuthHandler{
		userRepository:  userRepo,
		authService:     authService,
		jwtSecret:       jwtSecret,
		defaultImageURL: defaultImageURL,
	}
}

// RegisterAuthRoutes registers the unauthenticated signup/login routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
}

// Signup registers a new account: it validates the payload, reserves the
// handle, creates the auth-service identity and the user document and
// returns a fresh bearer token. Nothing is created when the handle is
// already taken.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}

	if errs := validators.ValidateSignup(req); len(errs) > 0 {
		return apperrors.Validation(errs)
	}

	ctx := c.Request().Context()

	taken, err := h.userRepository.HandleExists(ctx, req.Handle)
	if err != nil {
		return apperrors.Store(err)
	}
	if taken {
		return apperrors.Conflict("handle", "Handle already taken!")
	}

	uid, err := h.authService.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Store(err)
	}

	user := &models.User{
		Handle:       req.Handle,
		UserID:       uid,
		Email:        req.Email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
		ImageURL:     h.defaultImageURL,
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		if err == repositories.ErrDuplicate {
			return apperrors.Conflict("handle", "Handle already taken!")
		}
		return apperrors.Store(err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("User %s signed up successfully", user.Handle),
		"token":   token,
	})
}

// Login authenticates with email and password and returns a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}

	if errs := validators.ValidateLogin(req); len(errs) > 0 {
		return apperrors.Validation(errs)
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.Auth("Wrong details")
		}
		return apperrors.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return apperrors.Auth("Wrong details")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		Handle: user.Handle,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
