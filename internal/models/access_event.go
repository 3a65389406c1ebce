package models

import "time"

// AccessEvent records that an owner retrieved a podcast at a point in time.
// Deleting a podcast cascades to its access events.
type AccessEvent struct {
	ID         int64     `db:"id"`
	PodcastID  int64     `db:"podcast_id"`
	OwnerID    string    `db:"owner_id"`
	AccessedAt time.Time `db:"accessed_at"`
}
