// Package pagination computes page windows over newest-first collections and
// produces the navigation metadata embedded in list responses.
package pagination

import "fmt"

// Meta is the navigation metadata attached to every paginated response.
//
// FirstPageURL and LastPageURL are always present; first/last navigation is
// uniform regardless of how many pages the collection spans. Next and prev
// are null off the edges of the window.
type Meta struct {
	CurrentPage  int     `json:"current_page"`
	TotalPages   int     `json:"total_pages"`
	PerPage      int     `json:"per_page"`
	TotalItems   int64   `json:"total_items"`
	NextPageURL  *string `json:"next_page_url"`
	PrevPageURL  *string `json:"prev_page_url"`
	FirstPageURL string  `json:"first_page_url"`
	LastPageURL  string  `json:"last_page_url"`
}

// Page couples one page of items with its navigation metadata.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// Request identifies the requested page window. Page sizes are fixed per
// resource type; only the page number comes from the caller.
type Request struct {
	Page    int
	PerPage int
}

// Normalize applies defaults and constraints.
func (r *Request) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PerPage <= 0 {
		r.PerPage = 1
	}
}

// Offset returns the offset value.
func (r *Request) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// Limit returns the limit value.
func (r *Request) Limit() int {
	return r.PerPage
}

// NewPage builds a page from the fetched window, the collection total, and
// the list endpoint's base URL (e.g. "http://host/api/posts").
func NewPage[T any](items []T, total int64, req Request, baseURL string) Page[T] {
	return Page[T]{
		Items: items,
		Meta:  NewMeta(req.Page, req.PerPage, total, baseURL),
	}
}

// NewMeta computes navigation metadata for page current of a collection with
// total items at perPage items per page. An empty collection still reports a
// single page so clients always see a consistent window.
func NewMeta(current, perPage int, total int64, baseURL string) Meta {
	if current < 1 {
		current = 1
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	meta := Meta{
		CurrentPage:  current,
		TotalPages:   totalPages,
		PerPage:      perPage,
		TotalItems:   total,
		FirstPageURL: pageURL(baseURL, 1),
		LastPageURL:  pageURL(baseURL, totalPages),
	}

	if current < totalPages {
		next := pageURL(baseURL, current+1)
		meta.NextPageURL = &next
	}
	if current > 1 {
		prev := pageURL(baseURL, current-1)
		meta.PrevPageURL = &prev
	}

	return meta
}

// PageForID estimates which page an id would appear on if ids were sequential
// and nothing had been deleted. This is a best-effort approximation kept for
// client compatibility, not a lookup of the item's real ordinal position; it
// drifts whenever rows have been deleted or the ordering differs from
// identity order.
func PageForID(id int64, perPage int) int {
	if id < 1 {
		return 1
	}
	page := int(id) / perPage
	if int(id)%perPage > 0 {
		page++
	}
	return page
}

func pageURL(baseURL string, page int) string {
	return fmt.Sprintf("%s?page=%d", baseURL, page)
}
