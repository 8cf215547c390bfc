package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

// NotificationHandler handles marking notifications as read. Creation and
// deletion of notifications belong to the change watcher, never to clients.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/notifications", h.MarkRead, authMW)
}

// MarkRead marks the given notifications as read in one batch, after
// verifying every one of them belongs to the caller
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)

	var req models.MarkNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}
	if len(req.Notifications) == 0 {
		return apperrors.Validation(map[string]string{"notifications": "Provide notification ids"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The ownership check counts distinct documents, so repeated IDs in the
	// batch must collapse to one before it runs.
	seen := make(map[primitive.ObjectID]struct{}, len(req.Notifications))
	ids := make([]primitive.ObjectID, 0, len(req.Notifications))
	for _, raw := range req.Notifications {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperrors.BadRequest("Invalid notification ID format")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	ctx := c.Request().Context()

	owned, err := h.notificationRepository.AllOwnedBy(ctx, handle, ids)
	if err != nil {
		return apperrors.Store(err)
	}
	if !owned {
		return apperrors.Forbidden("Forbidden")
	}

	if err := h.notificationRepository.MarkRead(ctx, ids); err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked as read"})
}
