package model

import "time"

// Concert represents a scheduled artist performance as stored in the
// `concerts` table.  A concert owns a collection of ticket offers;
// deleting a concert cascades to its offers at the database level.
//
// Fields:
//  ID        – primary key identifier.
//  Artist    – name of the performing artist.
//  Location  – venue where the concert takes place.
//  Date      – when the concert starts.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Concert struct {
	ID        uint64    `json:"id"`         // concerts.id
	Artist    string    `json:"artist"`     // concerts.artist
	Location  string    `json:"location"`   // concerts.location
	Date      time.Time `json:"date"`       // concerts.date
	CreatedAt time.Time `json:"created_at"` // concerts.created_at
	UpdatedAt time.Time `json:"updated_at"` // concerts.updated_at
}
