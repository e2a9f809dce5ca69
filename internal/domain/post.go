package domain

import "time"

// Post represents a blog post entity as persisted.
//
// Image holds the bare generated filename; rewriting it into a public URL is
// a projection applied at the serialization boundary, never here.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
