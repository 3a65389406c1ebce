package models

import "time"

// ProcessingLogEntry is a diagnostic record of a pipeline failure. The
// podcast reference is nullable because most failures happen before a
// record exists. Writes are best-effort and never block the pipeline.
type ProcessingLogEntry struct {
	ID        int64     `db:"id"`
	PodcastID *int64    `db:"podcast_id"`
	SourceURL string    `db:"source_url"`
	Category  string    `db:"category"`
	Message   string    `db:"message"`
	Trace     *string   `db:"trace"`
	CreatedAt time.Time `db:"created_at"`
}
