package db

import (
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"article-podcaster/internal/models"
)

const podcastColumns = "id, source_url, cache_key, title, script, audio_object_key, " +
	"owner_id, status, processing_time_ms, source_content_length, script_length, " +
	"audio_byte_size, created_at, updated_at"

// GetPodcastBySourceURL returns the podcast for a source URL, or nil when
// none exists.
func GetPodcastBySourceURL(sourceURL string) (*models.Podcast, error) {
	p := models.Podcast{}
	err := DB.Get(&p, "SELECT "+podcastColumns+" FROM podcasts WHERE source_url = $1", sourceURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPodcastByCacheKey returns the podcast for a cache key, or nil when
// none exists.
func GetPodcastByCacheKey(cacheKey string) (*models.Podcast, error) {
	p := models.Podcast{}
	err := DB.Get(&p, "SELECT "+podcastColumns+" FROM podcasts WHERE cache_key = $1", cacheKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePodcast inserts a completed podcast and returns its id. When two
// requests race on the same URL the losing insert trips the unique
// constraint; that is treated as "someone else finished first" and the
// existing record's id is returned.
func SavePodcast(p *models.Podcast) (int64, error) {
	query := `
		INSERT INTO podcasts (source_url, cache_key, title, script, audio_object_key,
			owner_id, status, processing_time_ms, source_content_length, script_length, audio_byte_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var id int64
	err := DB.Get(&id, query,
		p.SourceURL, p.CacheKey, p.Title, p.Script, p.AudioObjectKey,
		p.OwnerID, p.Status, p.ProcessingTimeMs, p.SourceContentLength, p.ScriptLength, p.AudioByteSize)
	if err != nil {
		if isUniqueViolation(err) {
			existing, gerr := GetPodcastBySourceURL(p.SourceURL)
			if gerr == nil && existing != nil {
				log.Printf("Podcast for %s already saved by a concurrent request", p.SourceURL)
				return existing.ID, nil
			}
		}
		return 0, err
	}
	return id, nil
}

// ListPodcastsByOwner returns an owner's podcasts, newest first.
func ListPodcastsByOwner(ownerID string, limit int) ([]models.Podcast, error) {
	if limit <= 0 {
		limit = 20
	}
	query := "SELECT " + podcastColumns + ` FROM podcasts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	var podcasts []models.Podcast
	if err := DB.Select(&podcasts, query, ownerID, limit); err != nil {
		log.Printf("Error listing podcasts for owner %s: %v", ownerID, err)
		return nil, err
	}
	return podcasts, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
