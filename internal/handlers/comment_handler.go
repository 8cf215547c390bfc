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

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/post/:postId/comment", h.CreateComment, authMW)
}

// CreateComment comments on an existing post. The comment insert and the
// post's commentCount increment happen in one transaction.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	userImage, _ := c.Get(middleware.ContextUserImage).(string)
	postID := c.Param("postId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.Validation(map[string]string{"body": "Comment must not be empty"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	comment := &models.Comment{
		PostID:     postID,
		UserHandle: handle,
		Body:       req.Body,
		UserImage:  userImage,
	}
	if err := h.commentRepository.AddComment(ctx, comment); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, comment)
}
