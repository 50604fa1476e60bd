package model

import "time"

// AdminRoleID is the role identifier that grants elevated access.
const AdminRoleID uint64 = 1

// User represents a row in the `users` table. The plaintext password
// submitted during registration is never stored; only the bcrypt digest
// is persisted in password_digest.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Fullname       – display name of the user.
//  Username       – handle used by the user search endpoint.
//  Email          – unique email address, the registration key.
//  PasswordDigest – bcrypt hash of the password.
//  RoleID         – foreign key into the roles table; 1 denotes admin.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64    `json:"id"`
	Fullname       string    `json:"fullname"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	RoleID         uint64    `json:"roleId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.RoleID == AdminRoleID }
