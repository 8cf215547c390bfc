package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

// MessageHandler handles direct messages between users
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/user/:userHandle/message", h.SendMessage, authMW)
	e.GET("/messages/:senderHandle", h.GetConversation, authMW)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	sender := c.Get(middleware.ContextUserHandle).(string)
	recipient := c.Param("userHandle")

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.Validation(map[string]string{"body": "Message must not be empty"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message := &models.Message{
		Sender:    sender,
		Recipient: recipient,
		Body:      req.Body,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Message sent successfully"})
}

// GetConversation returns the messages a sender has sent to the caller,
// together with the sender's trimmed profile
func (h *MessageHandler) GetConversation(c echo.Context) error {
	recipient := c.Get(middleware.ContextUserHandle).(string)
	sender := c.Param("senderHandle")
	ctx := c.Request().Context()

	messages, err := h.messageRepository.GetConversation(ctx, recipient, sender)
	if err != nil {
		return apperrors.Store(err)
	}
	if len(messages) == 0 {
		return apperrors.NotFound("No messages found")
	}

	senderUser, err := h.userRepository.GetUserByHandle(ctx, sender)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Sender not found")
		}
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages": messages,
		"senderProfile": models.SenderProfile{
			Handle:    senderUser.Handle,
			Bio:       senderUser.Bio,
			Website:   senderUser.Website,
			ImageURL:  senderUser.ImageURL,
			CreatedAt: senderUser.CreatedAt,
		},
	})
}
