package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/kamaumbugua/socialnet/backend/internal/handlers"
	"github.com/kamaumbugua/socialnet/backend/internal/middleware"
	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

func TestCreatePost(t *testing.T) {
	posts := newFakePostRepo()
	h := handlers.NewPostHandler(posts, newFakeCommentRepo(posts))

	c, rec := newJSONContext(t, http.MethodPost, "/newPost", models.CreatePostRequest{Body: "first!"})
	c.Set(middleware.ContextUserHandle, "alice")
	c.Set(middleware.ContextUserImage, "https://example.com/alice.png")
	invoke(h.CreatePost, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["userHandle"] != "alice" || body["body"] != "first!" {
		t.Errorf("unexpected post: %v", body)
	}
	if body["likeCount"] != float64(0) || body["commentCount"] != float64(0) {
		t.Error("new post must start with zero counters")
	}
	if body["userImage"] != "https://example.com/alice.png" {
		t.Error("new post must snapshot the caller's image")
	}
}

func TestCreatePostEmptyBody(t *testing.T) {
	posts := newFakePostRepo()
	h := handlers.NewPostHandler(posts, newFakeCommentRepo(posts))

	c, rec := newJSONContext(t, http.MethodPost, "/newPost", models.CreatePostRequest{Body: "   "})
	c.Set(middleware.ContextUserHandle, "alice")
	invoke(h.CreatePost, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(posts.posts) != 0 {
		t.Error("no post may be created from an empty body")
	}
}

func TestCreatePostBodyTooLong(t *testing.T) {
	posts := newFakePostRepo()
	h := handlers.NewPostHandler(posts, newFakeCommentRepo(posts))

	c, rec := newJSONContext(t, http.MethodPost, "/newPost", models.CreatePostRequest{
		Body: strings.Repeat("a", 300),
	})
	c.Set(middleware.ContextUserHandle, "alice")
	invoke(h.CreatePost, c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(posts.posts) != 0 {
		t.Error("no post may be created from an over-length body")
	}
}

func TestGetPostNotFound(t *testing.T) {
	posts := newFakePostRepo()
	h := handlers.NewPostHandler(posts, newFakeCommentRepo(posts))

	c, rec := newJSONContext(t, http.MethodGet, "/post/ffffffffffffffffffffffff", nil)
	c.SetParamNames("postId")
	c.SetParamValues("ffffffffffffffffffffffff")
	invoke(h.GetPost, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeletePostOwnership(t *testing.T) {
	posts := newFakePostRepo()
	h := handlers.NewPostHandler(posts, newFakeCommentRepo(posts))

	post := &models.Post{UserHandle: "alice", Body: "mine"}
	if err := posts.CreatePost(context.Background(), post); err != nil {
		t.Fatal(err)
	}
	postID := post.ID.Hex()

	// not the owner
	c, rec := newJSONContext(t, http.MethodDelete, "/post/"+postID, nil)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	c.Set(middleware.ContextUserHandle, "bob")
	invoke(h.DeletePost, c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if _, ok := posts.posts[postID]; !ok {
		t.Fatal("post must survive a forbidden delete")
	}

	// the owner
	c, rec = newJSONContext(t, http.MethodDelete, "/post/"+postID, nil)
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	c.Set(middleware.ContextUserHandle, "alice")
	invoke(h.DeletePost, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if _, ok := posts.posts[postID]; ok {
		t.Fatal("post must be deleted")
	}
}

func TestCreateComment(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo(posts)
	h := handlers.NewCommentHandler(comments, posts)

	post := &models.Post{UserHandle: "alice", Body: "hello"}
	if err := posts.CreatePost(context.Background(), post); err != nil {
		t.Fatal(err)
	}
	postID := post.ID.Hex()

	c, rec := newJSONContext(t, http.MethodPost, "/post/"+postID+"/comment", models.CreateCommentRequest{Body: "nice"})
	c.SetParamNames("postId")
	c.SetParamValues(postID)
	c.Set(middleware.ContextUserHandle, "bob")
	invoke(h.CreateComment, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if post.CommentCount != 1 {
		t.Errorf("commentCount = %d, want 1", post.CommentCount)
	}
	got, _ := comments.GetCommentsByPostID(context.Background(), postID)
	if len(got) != 1 || got[0].UserHandle != "bob" {
		t.Errorf("stored comments = %+v", got)
	}
}

func TestCreateCommentMissingPost(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo(posts)
	h := handlers.NewCommentHandler(comments, posts)

	c, rec := newJSONContext(t, http.MethodPost, "/post/ffffffffffffffffffffffff/comment", models.CreateCommentRequest{Body: "nice"})
	c.SetParamNames("postId")
	c.SetParamValues("ffffffffffffffffffffffff")
	c.Set(middleware.ContextUserHandle, "bob")
	invoke(h.CreateComment, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(comments.comments) != 0 {
		t.Error("no comment may be created for a missing post")
	}
}
