// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

// User represents an authenticated user of the host application. The blog
// only cares about two things: identity (to attribute comments) and role
// (to decide whether the visibility predicate is bypassed).
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanManageBlogPosts reports whether the user holds the capability that
// bypasses post visibility filtering (authors previewing scheduled or
// unpublished posts).
func (u *User) CanManageBlogPosts() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}
