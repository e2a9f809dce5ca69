package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/repository"
)

// CoffeeShopRepository is an in-memory implementation of the
// CoffeeShopRepository interface
type CoffeeShopRepository struct {
	mu     sync.RWMutex
	nextID int64
	shops  map[int64]*domain.CoffeeShop
}

// NewCoffeeShopRepository creates a new in-memory coffee shop repository
func NewCoffeeShopRepository() repository.CoffeeShopRepository {
	return &CoffeeShopRepository{
		nextID: 1,
		shops:  make(map[int64]*domain.CoffeeShop),
	}
}

// Create adds a new coffee shop and assigns it the next identity.
func (r *CoffeeShopRepository) Create(ctx context.Context, shop *domain.CoffeeShop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop.ID = r.nextID
	r.nextID++

	now := time.Now().UTC()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	stored := *shop
	r.shops[shop.ID] = &stored
	return nil
}

// Get retrieves a coffee shop by ID
func (r *CoffeeShopRepository) Get(ctx context.Context, id int64) (*domain.CoffeeShop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, exists := r.shops[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	found := *shop
	return &found, nil
}

// Update replaces an existing coffee shop
func (r *CoffeeShopRepository) Update(ctx context.Context, shop *domain.CoffeeShop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.shops[shop.ID]
	if !exists {
		return domain.ErrNotFound
	}

	shop.CreatedAt = existing.CreatedAt
	shop.UpdatedAt = time.Now().UTC()

	stored := *shop
	r.shops[shop.ID] = &stored
	return nil
}

// Delete removes a coffee shop by ID. Identities are never reused.
func (r *CoffeeShopRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shops[id]; !exists {
		return domain.ErrNotFound
	}

	delete(r.shops, id)
	return nil
}

// List retrieves coffee shops newest-first, windowed by offset and limit
func (r *CoffeeShopRepository) List(ctx context.Context, offset, limit int) ([]*domain.CoffeeShop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.CoffeeShop, 0, len(r.shops))
	for _, shop := range r.shops {
		found := *shop
		all = append(all, &found)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return []*domain.CoffeeShop{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the total number of coffee shops
func (r *CoffeeShopRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.shops)), nil
}
