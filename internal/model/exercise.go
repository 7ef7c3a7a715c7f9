package model

import "time"

// Exercise is one logged activity: what was done, for how many minutes,
// and on which calendar date.
//
// An exercise is owned by exactly one user. Username is denormalized onto
// the record (the log query filters by username), while UserID keeps the
// reference to the owning user row.
//
// Exercises are immutable after creation — there is no update or delete path.
type Exercise struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // minutes
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"-"`
}
