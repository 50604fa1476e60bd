package model

import "time"

// Role represents a row in the `roles` table. Users reference roles
// through their RoleID field; the row with ID 1 is the admin role.
type Role struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
