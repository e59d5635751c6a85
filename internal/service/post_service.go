package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostCache is the read cache consulted by the public post endpoints.
type PostCache interface {
	GetList(ctx context.Context) ([]domain.Post, bool)
	SetList(ctx context.Context, posts []domain.Post)
	GetPost(ctx context.Context, id string) (*domain.Post, bool)
	SetPost(ctx context.Context, post *domain.Post)
	Invalidate(ctx context.Context, ids ...string)
}

// PostCreateInput carries fields for a new post.
type PostCreateInput struct {
	Title     string
	Content   string
	Published bool
}

// PostUpdateInput carries updatable fields. The author is not among them.
type PostUpdateInput struct {
	Title     string
	Content   string
	Published *bool
}

// PostService implements post reads and guarded mutations.
type PostService struct {
	posts      repository.PostRepository
	cache      PostCache
	dispatcher events.Dispatcher
}

// NewPostService builds the service. Cache may be nil.
func NewPostService(posts repository.PostRepository, cache PostCache, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, cache: cache, dispatcher: dispatcher}
}

// ListPosts returns all posts, cache-aside.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.GetList(ctx); ok {
			return posts, nil
		}
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetList(ctx, posts)
	}
	return posts, nil
}

// GetPost loads one post by ID.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if s.cache != nil {
		if post, ok := s.cache.GetPost(ctx, id); ok {
			return post, nil
		}
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetPost(ctx, post)
	}
	return post, nil
}

// CreatePost records a new post owned by the caller. The author-role gate
// runs at the route; ownership is fixed here at creation.
func (s *PostService) CreatePost(ctx context.Context, identity *auth.Identity, input PostCreateInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  identity.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.publish(ctx, identity, events.EventPostCreated, post)
	return post, nil
}

// UpdatePost mutates a post after existence and ownership clear, in that
// order.
func (s *PostService) UpdatePost(ctx context.Context, identity *auth.Identity, id string, input PostUpdateInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "post", post.AuthorID, domain.RoleAuthor); err != nil {
		return nil, err
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if err := s.posts.Update(ctx, post); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, post.ID)
	}
	s.publish(ctx, identity, events.EventPostUpdated, post)
	return post, nil
}

// DeletePost removes a post after existence and ownership clear.
func (s *PostService) DeletePost(ctx context.Context, identity *auth.Identity, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "post", post.AuthorID, domain.RoleAuthor); err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, post.ID)
	}
	s.publish(ctx, identity, events.EventPostDeleted, post)
	return post, nil
}

func (s *PostService) publish(ctx context.Context, identity *auth.Identity, eventType events.EventType, post *domain.Post) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType,
		events.Actor{UserID: identity.UserID, Role: identity.Role},
		events.PostPayload{
			PostID:    post.ID,
			Title:     post.Title,
			Published: post.Published,
		}))
}
