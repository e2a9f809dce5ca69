package psql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kopikita/blogshop/internal/domain"
)

// PSQLCoffeeShopRepository implements the CoffeeShopRepository interface
type PSQLCoffeeShopRepository struct {
	BaseRepository
}

// NewPSQLCoffeeShopRepository creates a new PostgreSQL coffee shop repository
func NewPSQLCoffeeShopRepository(db DBTX) *PSQLCoffeeShopRepository {
	return &PSQLCoffeeShopRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create implements CoffeeShopRepository.Create
func (r *PSQLCoffeeShopRepository) Create(ctx context.Context, shop *domain.CoffeeShop) error {
	query := `
		INSERT INTO coffee_shops (name, location, owner, rating, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	return r.db.QueryRow(
		ctx,
		query,
		shop.Name,
		shop.Location,
		shop.Owner,
		shop.Rating,
		shop.Image,
		shop.CreatedAt,
		shop.UpdatedAt,
	).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}

// Get implements CoffeeShopRepository.Get
func (r *PSQLCoffeeShopRepository) Get(ctx context.Context, id int64) (*domain.CoffeeShop, error) {
	query := `
		SELECT id, name, location, owner, rating, COALESCE(image, ''), created_at, updated_at
		FROM coffee_shops
		WHERE id = $1
	`

	shop := &domain.CoffeeShop{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&shop.ID,
		&shop.Name,
		&shop.Location,
		&shop.Owner,
		&shop.Rating,
		&shop.Image,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return shop, nil
}

// Update implements CoffeeShopRepository.Update
func (r *PSQLCoffeeShopRepository) Update(ctx context.Context, shop *domain.CoffeeShop) error {
	query := `
		UPDATE coffee_shops
		SET name = $2,
			location = $3,
			owner = $4,
			rating = $5,
			image = NULLIF($6, ''),
			updated_at = $7
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	shop.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRow(
		ctx,
		query,
		shop.ID,
		shop.Name,
		shop.Location,
		shop.Owner,
		shop.Rating,
		shop.Image,
		shop.UpdatedAt,
	).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete implements CoffeeShopRepository.Delete
func (r *PSQLCoffeeShopRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coffee_shops WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements CoffeeShopRepository.List
func (r *PSQLCoffeeShopRepository) List(ctx context.Context, offset, limit int) ([]*domain.CoffeeShop, error) {
	query := `
		SELECT id, name, location, owner, rating, COALESCE(image, ''), created_at, updated_at
		FROM coffee_shops
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []*domain.CoffeeShop{}
	for rows.Next() {
		shop := &domain.CoffeeShop{}
		if err := rows.Scan(
			&shop.ID,
			&shop.Name,
			&shop.Location,
			&shop.Owner,
			&shop.Rating,
			&shop.Image,
			&shop.CreatedAt,
			&shop.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}

	return shops, rows.Err()
}

// Count implements CoffeeShopRepository.Count
func (r *PSQLCoffeeShopRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coffee_shops`).Scan(&count)
	return count, err
}
