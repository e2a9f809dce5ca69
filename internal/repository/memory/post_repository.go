package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/repository"
)

// PostRepository is an in-memory implementation of the PostRepository interface
type PostRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]*domain.Post
}

// NewPostRepository creates a new in-memory post repository
func NewPostRepository() repository.PostRepository {
	return &PostRepository{
		nextID: 1,
		posts:  make(map[int64]*domain.Post),
	}
}

// Create adds a new post and assigns it the next identity.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++

	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

// Get retrieves a post by ID
func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	found := *post
	return &found, nil
}

// Update replaces an existing post
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.posts[post.ID]
	if !exists {
		return domain.ErrNotFound
	}

	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now().UTC()

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

// Delete removes a post by ID. Identities are never reused.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return domain.ErrNotFound
	}

	delete(r.posts, id)
	return nil
}

// List retrieves posts newest-first, windowed by offset and limit
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		found := *post
		all = append(all, &found)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return []*domain.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the total number of posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.posts)), nil
}
