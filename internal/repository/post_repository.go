package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
)

// PostRepository defines persistence access for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, content, published, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.Published,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	// author_id is intentionally not updatable: ownership is immutable.
	const query = `
        UPDATE posts SET title=$1, content=$2, published=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		post.Title,
		post.Content,
		post.Published,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
        SELECT id, title, content, published, author_id, created_at, updated_at
        FROM posts WHERE id=$1`

	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]domain.Post, error) {
	const query = `
        SELECT id, title, content, published, author_id, created_at, updated_at
        FROM posts ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Published,
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
