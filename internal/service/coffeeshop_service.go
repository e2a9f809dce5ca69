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

// CoffeeShopBlobPrefix is the blob store namespace for coffee shop images.
const CoffeeShopBlobPrefix = "coffeeshops"

// CoffeeShopService handles coffee shop lifecycle operations
type CoffeeShopService struct {
	repo  repository.CoffeeShopRepository
	blobs storage.Backend
}

// NewCoffeeShopService creates a new coffee shop service
func NewCoffeeShopService(repo repository.CoffeeShopRepository, blobs storage.Backend) *CoffeeShopService {
	return &CoffeeShopService{
		repo:  repo,
		blobs: blobs,
	}
}

// CreateCoffeeShopParams carries the validated fields for creating a coffee
// shop. Image is optional.
type CreateCoffeeShopParams struct {
	Name     string
	Location string
	Owner    string
	Rating   int
	Image    *ImageUpload
}

// UpdateCoffeeShopParams carries the validated fields for updating a coffee
// shop. A nil Image leaves the existing image reference untouched.
type UpdateCoffeeShopParams struct {
	Name     string
	Location string
	Owner    string
	Rating   int
	Image    *ImageUpload
}

// List retrieves one page of coffee shops (newest-first) plus the collection
// total.
func (s *CoffeeShopService) List(ctx context.Context, req pagination.Request) ([]*domain.CoffeeShop, int64, error) {
	req.Normalize()

	shops, err := s.repo.List(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return shops, total, nil
}

// Get retrieves a coffee shop by id along with the collection total.
func (s *CoffeeShopService) Get(ctx context.Context, id int64) (*domain.CoffeeShop, int64, error) {
	shop, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return shop, total, nil
}

// Create inserts a coffee shop, storing its image blob first when supplied.
func (s *CoffeeShopService) Create(ctx context.Context, params CreateCoffeeShopParams) (*domain.CoffeeShop, error) {
	shop := &domain.CoffeeShop{
		Name:     params.Name,
		Location: params.Location,
		Owner:    params.Owner,
		Rating:   params.Rating,
	}

	var key string
	if params.Image != nil {
		name := newBlobName(params.Image.Filename)
		key = blobKey(CoffeeShopBlobPrefix, name)

		if err := s.blobs.Upload(ctx, key, params.Image.Reader); err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		shop.Image = name
	}

	if err := s.repo.Create(ctx, shop); err != nil {
		if key != "" {
			if delErr := s.blobs.Delete(ctx, key); delErr != nil && !errors.Is(delErr, domain.ErrBlobNotFound) {
				slog.Warn("failed to clean up image after create failure", "key", key, "error", delErr)
			}
		}
		return nil, err
	}

	return shop, nil
}

// Update replaces all non-image fields of a coffee shop, following the same
// write-new, commit, delete-old sequence as posts when a new image arrives.
func (s *CoffeeShopService) Update(ctx context.Context, id int64, params UpdateCoffeeShopParams) (*domain.CoffeeShop, error) {
	shop, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := shop.Image

	shop.Name = params.Name
	shop.Location = params.Location
	shop.Owner = params.Owner
	shop.Rating = params.Rating

	if params.Image != nil {
		name := newBlobName(params.Image.Filename)
		key := blobKey(CoffeeShopBlobPrefix, name)

		if err := s.blobs.Upload(ctx, key, params.Image.Reader); err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		shop.Image = name

		if err := s.repo.Update(ctx, shop); err != nil {
			if delErr := s.blobs.Delete(ctx, key); delErr != nil && !errors.Is(delErr, domain.ErrBlobNotFound) {
				slog.Warn("failed to clean up image after update failure", "key", key, "error", delErr)
			}
			return nil, err
		}

		s.deleteBlob(ctx, oldImage)
		return shop, nil
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}

	return shop, nil
}

// Delete removes the coffee shop row, then its image blob best-effort.
func (s *CoffeeShopService) Delete(ctx context.Context, id int64) error {
	shop, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteBlob(ctx, shop.Image)
	return nil
}

func (s *CoffeeShopService) deleteBlob(ctx context.Context, name string) {
	if name == "" {
		return
	}
	key := blobKey(CoffeeShopBlobPrefix, name)
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
		slog.Warn("failed to delete image blob", "key", key, "error", err)
	}
}
