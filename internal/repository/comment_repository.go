package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CommentRepository defines persistence access for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a Postgres-backed implementation.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (post_id, author_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	// post_id and author_id stay fixed for the comment's lifetime.
	const query = `
        UPDATE comments SET content=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, comment.Content, comment.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_id, content, created_at, updated_at
        FROM comments WHERE id=$1`

	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_id, content, created_at, updated_at
        FROM comments ORDER BY created_at`

	return r.collect(ctx, query)
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_id, content, created_at, updated_at
        FROM comments WHERE post_id=$1 ORDER BY created_at`

	return r.collect(ctx, query, postID)
}

func (r *commentRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
