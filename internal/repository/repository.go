package repository

import (
	"context"

	"github.com/kopikita/blogshop/internal/domain"
)

// PostRepository defines the interface for post operations
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error

	// List returns posts ordered newest-first (creation time descending,
	// ties broken by id descending), windowed by offset and limit.
	List(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
}

// CoffeeShopRepository defines the interface for coffee shop operations
type CoffeeShopRepository interface {
	Create(ctx context.Context, shop *domain.CoffeeShop) error
	Get(ctx context.Context, id int64) (*domain.CoffeeShop, error)
	Update(ctx context.Context, shop *domain.CoffeeShop) error
	Delete(ctx context.Context, id int64) error

	// List returns coffee shops ordered newest-first, windowed by offset
	// and limit.
	List(ctx context.Context, offset, limit int) ([]*domain.CoffeeShop, error)
	Count(ctx context.Context) (int64, error)
}
