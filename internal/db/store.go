package db

import "article-podcaster/internal/models"

// PodcastStore adapts the package-level persistence functions to the
// pipeline's Store interface so the orchestrator can be exercised against
// a mock in tests.
type PodcastStore struct{}

func NewPodcastStore() *PodcastStore { return &PodcastStore{} }

func (PodcastStore) ComputeCacheKey(sourceURL string) string {
	return ComputeCacheKey(sourceURL)
}

func (PodcastStore) GetByCacheKey(cacheKey string) (*models.Podcast, error) {
	return GetPodcastByCacheKey(cacheKey)
}

func (PodcastStore) Save(p *models.Podcast) (int64, error) {
	return SavePodcast(p)
}

func (PodcastStore) RecordAccess(ownerID string, podcastID int64) error {
	return RecordAccess(ownerID, podcastID)
}

func (PodcastStore) LogError(e *models.ProcessingLogEntry) error {
	return LogProcessingError(e)
}
