// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published after a registration creates a new
// account. Downstream consumers can log or notify without querying the
// primary database.
type UserRegisteredEvent struct {
	UserID    uint64 `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Fullname  string `json:"fullname"`
	RoleID    uint64 `json:"role_id"`
	CreatedAt string `json:"created_at"`
}

// DocumentCreatedEvent is published after a document is stored.
type DocumentCreatedEvent struct {
	DocumentID uint64 `json:"document_id"`
	Title      string `json:"title"`
	Access     string `json:"access"`
	OwnerID    uint64 `json:"owner_id"`
	OwnerEmail string `json:"owner_email"`
	CreatedAt  string `json:"created_at"`
}
