package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/pagination"
	"github.com/kopikita/blogshop/internal/repository"
	"github.com/kopikita/blogshop/internal/storage"
)

// PostBlobPrefix is the blob store namespace for post images.
const PostBlobPrefix = "posts"

// PostService handles post lifecycle operations
type PostService struct {
	repo  repository.PostRepository
	blobs storage.Backend
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepository, blobs storage.Backend) *PostService {
	return &PostService{
		repo:  repo,
		blobs: blobs,
	}
}

// CreatePostParams carries the validated fields for creating a post.
// Image is required on creation.
type CreatePostParams struct {
	Title    string
	Content  string
	Author   string
	Category string
	Image    ImageUpload
}

// UpdatePostParams carries the validated fields for updating a post.
// A nil Image leaves the existing image reference untouched.
type UpdatePostParams struct {
	Title    string
	Content  string
	Author   string
	Category string
	Image    *ImageUpload
}

// List retrieves one page of posts (newest-first) plus the collection total.
func (s *PostService) List(ctx context.Context, req pagination.Request) ([]*domain.Post, int64, error) {
	req.Normalize()

	posts, err := s.repo.List(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Get retrieves a post by id along with the collection total, which callers
// need to assemble the approximate pagination block.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, int64, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return post, total, nil
}

// Create stores the image blob under a generated name, then inserts the row.
// If the insert fails the just-written blob is cleaned up best-effort.
func (s *PostService) Create(ctx context.Context, params CreatePostParams) (*domain.Post, error) {
	name := newBlobName(params.Image.Filename)
	key := blobKey(PostBlobPrefix, name)

	if err := s.blobs.Upload(ctx, key, params.Image.Reader); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	post := &domain.Post{
		Title:    params.Title,
		Content:  params.Content,
		Author:   params.Author,
		Category: params.Category,
		Image:    name,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil && !errors.Is(delErr, domain.ErrBlobNotFound) {
			slog.Warn("failed to clean up image after create failure", "key", key, "error", delErr)
		}
		return nil, err
	}

	return post, nil
}

// Update replaces all non-image fields of a post. When a new image is
// supplied the sequence is: write new blob, commit the row change, then
// best-effort delete of the old blob. A cleanup failure is logged, never
// surfaced — the row already references the new image.
func (s *PostService) Update(ctx context.Context, id int64, params UpdatePostParams) (*domain.Post, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image

	post.Title = params.Title
	post.Content = params.Content
	post.Author = params.Author
	post.Category = params.Category

	if params.Image != nil {
		name := newBlobName(params.Image.Filename)
		key := blobKey(PostBlobPrefix, name)

		if err := s.blobs.Upload(ctx, key, params.Image.Reader); err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		post.Image = name

		if err := s.repo.Update(ctx, post); err != nil {
			if delErr := s.blobs.Delete(ctx, key); delErr != nil && !errors.Is(delErr, domain.ErrBlobNotFound) {
				slog.Warn("failed to clean up image after update failure", "key", key, "error", delErr)
			}
			return nil, err
		}

		s.deleteBlob(ctx, PostBlobPrefix, oldImage)
		return post, nil
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes the post row, then its image blob best-effort.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteBlob(ctx, PostBlobPrefix, post.Image)
	return nil
}

func (s *PostService) deleteBlob(ctx context.Context, prefix, name string) {
	if name == "" {
		return
	}
	key := blobKey(prefix, name)
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
		slog.Warn("failed to delete image blob", "key", key, "error", err)
	}
}
