package models

import "time"

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AnonymousOwner is the owner recorded when a caller does not identify itself.
const AnonymousOwner = "anonymous"

// Podcast is one generated narration for a source article URL.
type Podcast struct {
	ID                  int64     `db:"id" json:"id"`
	SourceURL           string    `db:"source_url" json:"source_url"`
	CacheKey            string    `db:"cache_key" json:"cache_key"`
	Title               string    `db:"title" json:"title"`
	Script              string    `db:"script" json:"script"`
	AudioObjectKey      string    `db:"audio_object_key" json:"audio_object_key"`
	OwnerID             string    `db:"owner_id" json:"owner_id"`
	Status              string    `db:"status" json:"status"`
	ProcessingTimeMs    int64     `db:"processing_time_ms" json:"processing_time_ms"`
	SourceContentLength int       `db:"source_content_length" json:"source_content_length"`
	ScriptLength        int       `db:"script_length" json:"script_length"`
	AudioByteSize       int64     `db:"audio_byte_size" json:"audio_byte_size"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`

	// AudioURL is derived from the object key and the public base URL.
	// It is never persisted.
	AudioURL string `db:"-" json:"audio_url"`
}
