package middleware

import (
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

// Context keys set by the auth middleware
const (
	ContextUserHandle = "userHandle"
	ContextUserImage  = "userImage"
)

// AuthMiddleware verifies the bearer token and loads the caller's handle
// and current image URL into the request context. Locally issued JWTs are
// checked first; a Firebase ID token is accepted as a fallback when an auth
// client is configured.
func AuthMiddleware(authClient *auth.Client, userRepo repositories.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperrors.Auth("Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return apperrors.Auth("Authorization header must be in Bearer format")
			}
			tokenString := parts[1]

			user, err := resolveUser(c, tokenString, authClient, userRepo, jwtSecret)
			if err != nil {
				return err
			}

			c.Set(ContextUserHandle, user.Handle)
			c.Set(ContextUserImage, user.ImageURL)

			return next(c)
		}
	}
}

func resolveUser(c echo.Context, tokenString string, authClient *auth.Client, userRepo repositories.UserRepository, jwtSecret string) (*models.User, error) {
	ctx := c.Request().Context()

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Auth("Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err == nil && token.Valid {
		user, err := userRepo.GetUserByHandle(ctx, claims.Handle)
		if err != nil {
			return nil, apperrors.Auth("Unknown user")
		}
		return user, nil
	}

	if authClient != nil {
		decoded, err := authClient.VerifyIDToken(ctx, tokenString)
		if err == nil {
			user, err := userRepo.GetUserByUserID(ctx, decoded.UID)
			if err != nil {
				return nil, apperrors.Auth("Unknown user")
			}
			return user, nil
		}
	}

	return nil, apperrors.Auth("Invalid or expired token")
}
