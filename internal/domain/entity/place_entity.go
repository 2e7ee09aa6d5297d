package entity

import (
	"time"
)

// Location is a latitude/longitude pair resolved from the address at
// creation time. It is never recomputed on update.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a listed location owned by exactly one user. CreatorID is set
// at creation and immutable; only Title and Description may change later.
type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Location    Location  `json:"location"`
	ImageURL    string    `json:"image"`
	CreatorID   string    `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
