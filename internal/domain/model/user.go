package model

import (
	"time"
)

// User is an identity record. Username and email are each unique across all
// records; the id is assigned by storage and immutable. Users are never
// hard-deleted, deactivation is the only destructive operation.
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Not exposed
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"` // nil until first mutation
}
