package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash and never serialized.
//
// Places is the ordered list of place ids owned by this user. It is a
// back-reference: every id in it must point to an existing place whose
// CreatorID equals this user's ID. The list is only ever mutated inside
// the same transaction that creates or deletes the place.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageURL     string    `json:"image"`
	Places       []string  `json:"places"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
