package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
	"github.com/kamaumbugua/socialnet/backend/internal/router"
	"github.com/kamaumbugua/socialnet/backend/validators"
)

// --- in-memory fakes behind the repository interfaces ---

type fakeUserRepo struct {
	users map[string]*models.User // keyed by handle
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.Handle]; ok {
		return repositories.ErrDuplicate
	}
	f.users[user.Handle] = user
	return nil
}

func (f *fakeUserRepo) GetUserByHandle(_ context.Context, handle string) (*models.User, error) {
	user, ok := f.users[handle]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetUserByUserID(_ context.Context, userID string) (*models.User, error) {
	for _, user := range f.users {
		if user.UserID == userID {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) HandleExists(_ context.Context, handle string) (bool, error) {
	_, ok := f.users[handle]
	return ok, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, handle string, details map[string]string) error {
	user, ok := f.users[handle]
	if !ok {
		return repositories.ErrNotFound
	}
	if bio, ok := details["bio"]; ok {
		user.Bio = bio
	}
	if website, ok := details["website"]; ok {
		user.Website = website
	}
	if location, ok := details["location"]; ok {
		user.Location = location
	}
	return nil
}

func (f *fakeUserRepo) UpdateImageURL(_ context.Context, handle, imageURL string) error {
	user, ok := f.users[handle]
	if !ok {
		return repositories.ErrNotFound
	}
	user.ImageURL = imageURL
	return nil
}

type fakePostRepo struct {
	posts map[string]*models.Post // keyed by hex ID
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	for _, post := range f.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

func (f *fakePostRepo) GetPostsByUserHandle(_ context.Context, handle string) ([]models.Post, error) {
	posts := []models.Post{}
	for _, post := range f.posts {
		if post.UserHandle == handle {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) IncrementLikeCount(_ context.Context, postID string, delta int) error {
	if post, ok := f.posts[postID]; ok {
		post.LikeCount += delta
	}
	return nil
}

func (f *fakePostRepo) SyncUserImage(_ context.Context, handle, imageURL string) error {
	for _, post := range f.posts {
		if post.UserHandle == handle {
			post.UserImage = imageURL
		}
	}
	return nil
}

type fakeLikeRepo struct {
	likes map[primitive.ObjectID]*models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[primitive.ObjectID]*models.Like{}}
}

func (f *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	for _, existing := range f.likes {
		if existing.UserHandle == like.UserHandle && existing.PostID == like.PostID {
			return repositories.ErrDuplicate
		}
	}
	like.ID = primitive.NewObjectID()
	f.likes[like.ID] = like
	return nil
}

func (f *fakeLikeRepo) GetLike(_ context.Context, handle, postID string) (*models.Like, error) {
	for _, like := range f.likes {
		if like.UserHandle == handle && like.PostID == postID {
			return like, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeLikeRepo) DeleteLike(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.likes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.likes, id)
	return nil
}

func (f *fakeLikeRepo) GetLikesByUserHandle(_ context.Context, handle string) ([]models.Like, error) {
	likes := []models.Like{}
	for _, like := range f.likes {
		if like.UserHandle == handle {
			likes = append(likes, *like)
		}
	}
	return likes, nil
}

// fakeCommentRepo mirrors the transactional AddComment: the counter bump
// and the insert either both happen or neither does
type fakeCommentRepo struct {
	posts    *fakePostRepo
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentRepo(posts *fakePostRepo) *fakeCommentRepo {
	return &fakeCommentRepo{posts: posts, comments: map[primitive.ObjectID]*models.Comment{}}
}

func (f *fakeCommentRepo) AddComment(_ context.Context, comment *models.Comment) error {
	post, ok := f.posts.posts[comment.PostID]
	if !ok {
		return repositories.ErrNotFound
	}
	post.CommentCount++
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, comment := range f.comments {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[primitive.ObjectID]*models.Notification{}}
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if _, ok := f.notifications[n.ID]; !ok {
		f.notifications[n.ID] = n
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(f.notifications, id)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipient(_ context.Context, recipient string, limit int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	for _, n := range f.notifications {
		if n.Recipient == recipient {
			notifications = append(notifications, *n)
		}
	}
	return notifications, nil
}

// AllOwnedBy mirrors the store's semantics: it counts the distinct owned
// documents matching the batch and compares that count to the batch length
func (f *fakeNotificationRepo) AllOwnedBy(_ context.Context, recipient string, ids []primitive.ObjectID) (bool, error) {
	matched := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if n, ok := f.notifications[id]; ok && n.Recipient == recipient {
			matched[id] = struct{}{}
		}
	}
	return len(matched) == len(ids), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		if n, ok := f.notifications[id]; ok {
			n.Read = true
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages []*models.Message
}

func (f *fakeMessageRepo) CreateMessage(_ context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) GetConversation(_ context.Context, recipient, sender string) ([]models.Message, error) {
	messages := []models.Message{}
	for _, m := range f.messages {
		if m.Recipient == recipient && m.Sender == sender {
			messages = append(messages, *m)
		}
	}
	return messages, nil
}

// fakeAuthService stands in for the external identity service
type fakeAuthService struct {
	created int
	err     error
}

func (f *fakeAuthService) CreateIdentity(_ context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created++
	return "uid-" + email, nil
}

// --- request helpers ---

func newJSONContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e.NewContext(req, rec), rec
}

// invoke runs a handler and routes any returned error through the
// application's HTTP error handler, like the real server does
func invoke(handler echo.HandlerFunc, c echo.Context) {
	if err := handler(c); err != nil {
		router.HTTPErrorHandler(err, c)
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}
