package model

import "time"

// Article is a single blog post. The ID is assigned by the store on first
// save and is never reused, even after the article is deleted.
type Article struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
