package domain

import "time"

// CoffeeShop represents a coffee shop entity as persisted.
//
// Rating is stored as a plain integer (store default 0); the [1,5] range is
// enforced by request validation, not by the store.
type CoffeeShop struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Owner     string    `json:"owner"`
	Rating    int       `json:"rating"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
