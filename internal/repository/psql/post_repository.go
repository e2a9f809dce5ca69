package psql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kopikita/blogshop/internal/domain"
)

// PSQLPostRepository implements the PostRepository interface
type PSQLPostRepository struct {
	BaseRepository
}

// NewPSQLPostRepository creates a new PostgreSQL post repository
func NewPSQLPostRepository(db DBTX) *PSQLPostRepository {
	return &PSQLPostRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create implements PostRepository.Create
func (r *PSQLPostRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (title, content, author, category, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	return r.db.QueryRow(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Author,
		post.Category,
		post.Image,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// Get implements PostRepository.Get
func (r *PSQLPostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	query := `
		SELECT id, title, content, author, category, COALESCE(image, ''), created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	post := &domain.Post{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author,
		&post.Category,
		&post.Image,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return post, nil
}

// Update implements PostRepository.Update
func (r *PSQLPostRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $2,
			content = $3,
			author = $4,
			category = $5,
			image = NULLIF($6, ''),
			updated_at = $7
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	post.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRow(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Content,
		post.Author,
		post.Category,
		post.Image,
		post.UpdatedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete implements PostRepository.Delete
func (r *PSQLPostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements PostRepository.List
func (r *PSQLPostRepository) List(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	query := `
		SELECT id, title, content, author, category, COALESCE(image, ''), created_at, updated_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		post := &domain.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Author,
			&post.Category,
			&post.Image,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// Count implements PostRepository.Count
func (r *PSQLPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}
