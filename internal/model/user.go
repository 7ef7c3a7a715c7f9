// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain data carriers with
// struct tags describing their JSON wire shape.
package model

import "time"

// User represents an account that exercises are logged against.
//
// The JSON key for ID is "_id" (not "id") — the API originally spoke the
// MongoDB document shape, and clients depend on that key. CreatedAt is
// internal bookkeeping and never serialized.
//
// Users are created once and never mutated or deleted. Username is unique;
// the store enforces it with a UNIQUE constraint, and the service layer
// additionally checks before inserting so duplicates get a friendly message
// instead of a constraint error.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
}
