package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

// LikeHandler handles liking and unliking posts
type LikeHandler struct {
	likeRepository    repositories.LikeRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:    likeRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.GET("/post/:postId/like", h.LikePost, authMW)
	e.GET("/post/:postId/unlike", h.UnlikePost, authMW)
}

// LikePost likes a post and returns it with its comments. The unique
// (userHandle, postId) index rejects a second like by the same user, and
// the counter update is an atomic increment, so concurrent likers cannot
// lose updates.
func (h *LikeHandler) LikePost(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	like := &models.Like{PostID: postID, UserHandle: handle}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		if err == repositories.ErrDuplicate {
			return apperrors.Conflict("", "Post already Liked")
		}
		return apperrors.Store(err)
	}

	if err := h.postRepository.IncrementLikeCount(ctx, postID, 1); err != nil {
		return apperrors.Store(err)
	}

	return h.respondWithPost(c, postID)
}

// UnlikePost removes the caller's like and returns the post with its
// comments. The counter is only decremented when this request actually
// deleted the like, so a racing duplicate unlike cannot double-decrement.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	handle := c.Get(middleware.ContextUserHandle).(string)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NotFound("Post not found")
		}
		return apperrors.Store(err)
	}

	like, err := h.likeRepository.GetLike(ctx, handle, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.BadRequest("Post not liked")
		}
		return apperrors.Store(err)
	}

	if err := h.likeRepository.DeleteLike(ctx, like.ID); err != nil {
		if err != repositories.ErrNotFound {
			return apperrors.Store(err)
		}
	} else {
		if err := h.postRepository.IncrementLikeCount(ctx, postID, -1); err != nil {
			return apperrors.Store(err)
		}
	}

	return h.respondWithPost(c, postID)
}

func (h *LikeHandler) respondWithPost(c echo.Context, postID string) error {
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
