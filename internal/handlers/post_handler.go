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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.GET("/", h.ReadPosts)
	e.GET("/readPosts", h.ReadPosts)
	e.GET("/post/:postId", h.GetPost)
	e.POST("/newPost", h.CreatePost, authMW)
	e.DELETE("/post/:postId", h.DeletePost, authMW)
}

// ReadPosts returns all posts ordered by creation time descending
func (h *PostHandler) ReadPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return apperrors.Store(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post together with its comments, newest first
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("postId")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, models.PostWithComments{Post: *post, Comments: comments})
}

// CreatePost creates a new post with zero counters and the caller's
// current profile image
func (h *PostHandler) CreatePost(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	userImage, _ := c.Get(middleware.ContextUserImage).(string)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request payload")
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.Validation(map[string]string{"body": "Body must not be empty"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		UserHandle: handle,
		Body:       req.Body,
		UserImage:  userImage,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller. Dependent comments, likes
// and notifications are cascaded asynchronously by the change watcher.
func (h *PostHandler) DeletePost(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	if post.UserHandle != handle {
		return apperrors.Forbidden("Forbidden")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}
