package db

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-podcaster/internal/models"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	originalDB := DB
	DB = sqlx.NewDb(mockDb, "sqlmock")
	t.Cleanup(func() {
		DB = originalDB
		mockDb.Close()
	})
	return mock
}

func podcastRows(p models.Podcast) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "source_url", "cache_key", "title", "script", "audio_object_key",
		"owner_id", "status", "processing_time_ms", "source_content_length",
		"script_length", "audio_byte_size", "created_at", "updated_at",
	}).AddRow(p.ID, p.SourceURL, p.CacheKey, p.Title, p.Script, p.AudioObjectKey,
		p.OwnerID, p.Status, p.ProcessingTimeMs, p.SourceContentLength,
		p.ScriptLength, p.AudioByteSize, p.CreatedAt, p.UpdatedAt)
}

func samplePodcast() models.Podcast {
	return models.Podcast{
		ID:                  7,
		SourceURL:           "https://news.example/story-1",
		CacheKey:            ComputeCacheKey("https://news.example/story-1"),
		Title:               "Story 1",
		Script:              "A short narration.",
		AudioObjectKey:      "pcabc.mp3",
		OwnerID:             models.AnonymousOwner,
		Status:              models.StatusCompleted,
		ProcessingTimeMs:    1200,
		SourceContentLength: 500,
		ScriptLength:        120,
		AudioByteSize:       10000,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
}

func TestGetPodcastByCacheKey(t *testing.T) {
	mock := newMockDB(t)
	p := samplePodcast()

	mock.ExpectQuery(`SELECT .+ FROM podcasts WHERE cache_key = \$1`).
		WithArgs(p.CacheKey).
		WillReturnRows(podcastRows(p))

	got, err := GetPodcastByCacheKey(p.CacheKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.SourceURL, got.SourceURL)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPodcastBySourceURLMiss(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM podcasts WHERE source_url = \$1`).
		WithArgs("https://news.example/nothing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := GetPodcastBySourceURL("https://news.example/nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSavePodcast(t *testing.T) {
	mock := newMockDB(t)
	p := samplePodcast()

	mock.ExpectQuery(`INSERT INTO podcasts`).
		WithArgs(p.SourceURL, p.CacheKey, p.Title, p.Script, p.AudioObjectKey,
			p.OwnerID, p.Status, p.ProcessingTimeMs, p.SourceContentLength,
			p.ScriptLength, p.AudioByteSize).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := SavePodcast(&p)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePodcastDuplicateFallsBackToExisting(t *testing.T) {
	mock := newMockDB(t)
	p := samplePodcast()

	mock.ExpectQuery(`INSERT INTO podcasts`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "podcasts_source_url_key"})
	mock.ExpectQuery(`SELECT .+ FROM podcasts WHERE source_url = \$1`).
		WithArgs(p.SourceURL).
		WillReturnRows(podcastRows(p))

	id, err := SavePodcast(&p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPodcastsByOwner(t *testing.T) {
	mock := newMockDB(t)
	p := samplePodcast()

	mock.ExpectQuery(`SELECT .+ FROM podcasts\s+WHERE owner_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs("owner-1", 5).
		WillReturnRows(podcastRows(p))

	podcasts, err := ListPodcastsByOwner("owner-1", 5)
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	assert.Equal(t, p.CacheKey, podcasts[0].CacheKey)
}

func TestAggregateStats(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{
		"count", "distinct_owners", "avg_processing_time_ms",
		"total_audio_bytes", "completed_count", "failed_count",
	}).AddRow(3, 2, 1500.5, int64(30000), 3, 0)
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\) AS count`).WillReturnRows(rows)

	stats, err := AggregateStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, stats.DistinctOwners)
	assert.Equal(t, int64(30000), stats.TotalAudioBytes)
}

func TestRecordAccess(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO access_events`).
		WithArgs(int64(7), "owner-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, RecordAccess("owner-1", 7))
}

func TestLogProcessingError(t *testing.T) {
	mock := newMockDB(t)

	entry := &models.ProcessingLogEntry{
		SourceURL: "https://news.example/story-1",
		Category:  "synthesis",
		Message:   "upstream returned 500",
	}
	mock.ExpectExec(`INSERT INTO processing_log`).
		WithArgs(nil, entry.SourceURL, entry.Category, entry.Message, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, LogProcessingError(entry))
}
