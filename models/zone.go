package models

import "time"

// Zone is a named partition of records. Every zone carries its own change
// cursor, and deleting a zone removes every record inside it.
type Zone struct {
	// UserID is the owner of the zone.
	UserID int64 `json:"-"`

	// Name is the zone name, unique per user.
	Name string `json:"name"`

	// CreatedAt is the timestamp when the zone was created.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Zone model.
func (z Zone) TableName() string {
	return "zones"
}

// DefaultZone is the zone implicitly available to every user.
const DefaultZone = "default"
