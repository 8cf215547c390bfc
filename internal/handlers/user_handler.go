package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
	"github.com/kamaumbugua/socialnet/backend/internal/storage"
	"github.com/kamaumbugua/socialnet/backend/validators"
)

// UserHandler handles profile reads and updates
type UserHandler struct {
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
	blobStore              storage.BlobStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, notificationRepo repositories.NotificationRepository, blobStore storage.BlobStore) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		notificationRepository: notificationRepo,
		blobStore:              blobStore,
	}
}

// RegisterUserRoutes registers profile-related routes. The static
// /user/profile route must be registered alongside the /user/:handle
// parameter route; echo resolves static segments first.
func (h *UserHandler) RegisterUserRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/user/image", h.UploadImage, authMW)
	e.POST("/user", h.UpdateProfile, authMW)
	e.GET("/user/profile", h.GetOwnProfile, authMW)
	e.GET("/user/:handle", h.GetUserByHandle)
}

// UploadImage stores a new profile image and updates the user's image URL.
// Propagation of the new URL to the user's existing posts happens
// asynchronously through the change watcher.
func (h *UserHandler) UploadImage(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.BadRequest("Upload an image")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.IsSupportedImage(contentType) {
		return apperrors.BadRequest("Upload an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Store(err)
	}
	defer file.Close()

	ctx := c.Request().Context()

	imageURL, err := h.blobStore.UploadImage(ctx, file, contentType)
	if err != nil {
		return apperrors.Store(err)
	}

	if err := h.userRepository.UpdateImageURL(ctx, handle, imageURL); err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Image uploaded successfully"})
}

// UpdateProfile sets the caller's optional bio/website/location fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	details := validators.SanitizeProfile(req)
	if err := h.userRepository.UpdateProfile(c.Request().Context(), handle, details); err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// GetOwnProfile returns the caller's credentials, their likes and their ten
// most recent notifications
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByHandle(ctx, handle)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Not Found")
		}
		return apperrors.Store(err)
	}

	likes, err := h.likeRepository.GetLikesByUserHandle(ctx, handle)
	if err != nil {
		return apperrors.Store(err)
	}

	notifications, err := h.notificationRepository.GetByRecipient(ctx, handle, 10)
	if err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"credentials":   user,
		"likes":         likes,
		"notifications": notifications,
	})
}

// GetUserByHandle returns a user's public details flattened at the top
// level with their posts attached
func (h *UserHandler) GetUserByHandle(c echo.Context) error {
	handle := c.Param("handle")
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByHandle(ctx, handle)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("User Not found")
		}
		return apperrors.Store(err)
	}

	posts, err := h.postRepository.GetPostsByUserHandle(ctx, handle)
	if err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, models.UserWithPosts{User: *user, Posts: posts})
}
