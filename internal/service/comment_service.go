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

// CommentCreateInput carries fields for a new comment.
type CommentCreateInput struct {
	PostID  string
	Content string
}

// CommentService implements comment reads and guarded mutations. Any
// authenticated user may comment; moderation rests on the ownership policy
// with the author override.
type CommentService struct {
	comments   repository.CommentRepository
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// NewCommentService builds the service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, posts: posts, dispatcher: dispatcher}
}

// ListComments returns every comment.
func (s *CommentService) ListComments(ctx context.Context) ([]domain.Comment, error) {
	return s.comments.List(ctx)
}

// ListCommentsForPost returns a post's comments; the post must exist.
func (s *CommentService) ListCommentsForPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// GetComment loads one comment by ID.
func (s *CommentService) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	return comment, nil
}

// CreateComment records a comment on an existing post, owned by the caller.
func (s *CommentService) CreateComment(ctx context.Context, identity *auth.Identity, input CommentCreateInput) (*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, input.PostID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   input.PostID,
		AuthorID: identity.UserID,
		Content:  input.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publish(ctx, identity, events.EventCommentCreated, comment)
	return comment, nil
}

// UpdateComment rewrites a comment's content after existence and ownership
// clear, in that order.
func (s *CommentService) UpdateComment(ctx context.Context, identity *auth.Identity, id, content string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "comment", comment.AuthorID, domain.RoleAuthor); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment after existence and ownership clear. The
// author override is what allows moderation of other users' comments.
func (s *CommentService) DeleteComment(ctx context.Context, identity *auth.Identity, id string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "comment", comment.AuthorID, domain.RoleAuthor); err != nil {
		return nil, err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	s.publish(ctx, identity, events.EventCommentDeleted, comment)
	return comment, nil
}

func (s *CommentService) publish(ctx context.Context, identity *auth.Identity, eventType events.EventType, comment *domain.Comment) {
	if s.dispatcher == nil {
		return
	}
	preview := comment.Content
	if len(preview) > 80 {
		preview = preview[:80]
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType,
		events.Actor{UserID: identity.UserID, Role: identity.Role},
		events.CommentPayload{
			CommentID:   comment.ID,
			PostID:      comment.PostID,
			BodyPreview: preview,
		}))
}
