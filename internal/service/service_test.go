package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
)

func authConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 1,
		BcryptCost:          4,
	}
}

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

type memPostRepo struct {
	mu    sync.Mutex
	seq   int
	posts map[string]domain.Post
	listN int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]domain.Post)}
}

func (r *memPostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = *post
	return nil
}

func (r *memPostRepo) Update(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &post, nil
}

func (r *memPostRepo) List(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listN++
	posts := make([]domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post)
	}
	return posts, nil
}

type memCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: make(map[string]domain.Comment)}
}

func (r *memCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	r.comments[comment.ID] = *comment
	return nil
}

func (r *memCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return pgx.ErrNoRows
	}
	comment.UpdatedAt = time.Now()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *memCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

func (r *memCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &comment, nil
}

func (r *memCommentRepo) List(_ context.Context) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comments := make([]domain.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *memCommentRepo) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []domain.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		types = append(types, e.Type)
	}
	return types
}

// fakePostCache records cache traffic.
type fakePostCache struct {
	mu          sync.Mutex
	list        []domain.Post
	hasList     bool
	posts       map[string]domain.Post
	invalidated int
}

func newFakePostCache() *fakePostCache {
	return &fakePostCache{posts: make(map[string]domain.Post)}
}

func (c *fakePostCache) GetList(context.Context) ([]domain.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasList {
		return nil, false
	}
	return c.list, true
}

func (c *fakePostCache) SetList(_ context.Context, posts []domain.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = posts
	c.hasList = true
}

func (c *fakePostCache) GetPost(_ context.Context, id string) (*domain.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	post, ok := c.posts[id]
	if !ok {
		return nil, false
	}
	return &post, true
}

func (c *fakePostCache) SetPost(_ context.Context, post *domain.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[post.ID] = *post
}

func (c *fakePostCache) Invalidate(_ context.Context, ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasList = false
	c.list = nil
	for _, id := range ids {
		delete(c.posts, id)
	}
	c.invalidated++
}
