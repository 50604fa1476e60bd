package model

import "time"

// Access levels a document can carry. A public document is readable by
// any authenticated user; a private one only by its owner or an admin.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

// Document represents a row in the `documents` table. Each document is
// owned by exactly one user via OwnerID.
type Document struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Access    string    `json:"access"`
	OwnerID   uint64    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
