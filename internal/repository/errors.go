// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared by the entity
// repositories so handlers can map failures to specific HTTP statuses
// without inspecting driver error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup by id or email matches no row.
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint on users.
var ErrEmailExists = errors.New("email already exists")

// ErrRoleExists is returned when a role insert or update would violate
// the unique title constraint on roles.
var ErrRoleExists = errors.New("role title already exists")

// ErrRoleInUse is returned when deleting a role that users still
// reference. Handlers translate this into HTTP 409.
var ErrRoleInUse = errors.New("role still referenced by users")

// isDuplicate reports whether err is a unique-constraint violation.
// MySQL reports error 1062; SQLite reports "UNIQUE constraint failed".
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}
