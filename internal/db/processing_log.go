package db

import (
	"log"

	"article-podcaster/internal/models"
)

// LogProcessingError writes a diagnostic entry for a pipeline failure.
// It is best-effort: a write failure is logged and swallowed so
// diagnostics never break the pipeline itself.
func LogProcessingError(e *models.ProcessingLogEntry) error {
	_, err := DB.Exec(`
		INSERT INTO processing_log (podcast_id, source_url, category, message, trace)
		VALUES ($1, $2, $3, $4, $5)`,
		e.PodcastID, e.SourceURL, e.Category, e.Message, e.Trace)
	if err != nil {
		log.Printf("Error writing processing log for %s: %v", e.SourceURL, err)
	}
	return err
}
