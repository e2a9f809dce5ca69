package api

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/kopikita/blogshop/internal/domain"
)

// PostResource is the wire representation of a post. All display transforms
// (title capitalization, image URL rewrite) happen here, at the serialization
// boundary; the stored entity is never mutated.
type PostResource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoffeeShopResource is the wire representation of a coffee shop.
type CoffeeShopResource struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Owner     string    `json:"owner"`
	Rating    int       `json:"rating"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostResource projects a post for serialization.
func NewPostResource(post *domain.Post, baseURL string) PostResource {
	return PostResource{
		ID:        post.ID,
		Title:     capitalizeFirst(post.Title),
		Content:   post.Content,
		Author:    post.Author,
		Category:  post.Category,
		Image:     imageURL(baseURL, "posts", post.Image),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewCoffeeShopResource projects a coffee shop for serialization.
func NewCoffeeShopResource(shop *domain.CoffeeShop, baseURL string) CoffeeShopResource {
	return CoffeeShopResource{
		ID:        shop.ID,
		Name:      shop.Name,
		Location:  shop.Location,
		Owner:     shop.Owner,
		Rating:    shop.Rating,
		Image:     imageURL(baseURL, "coffeeshops", shop.Image),
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}

// capitalizeFirst upper-cases the first rune for display.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// imageURL rewrites a bare stored filename into a fully qualified URL under
// the public storage path for the resource. An absent image stays empty.
func imageURL(baseURL, prefix, name string) string {
	if name == "" {
		return ""
	}
	return baseURL + "/storage/" + prefix + "/" + name
}
