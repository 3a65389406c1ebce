package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"article-podcaster/internal/models"
	"article-podcaster/internal/pipeline"
	"article-podcaster/internal/ratelimit"
	"article-podcaster/internal/storage"
	"article-podcaster/internal/test"
	"article-podcaster/internal/tts"
	"article-podcaster/pkg/tasks"
)

type mockGenerator struct {
	record *models.Podcast
	err    error

	gotURL   string
	gotOwner string
}

func (m *mockGenerator) Generate(ctx context.Context, sourceURL, ownerID string) (*models.Podcast, error) {
	m.gotURL = sourceURL
	m.gotOwner = ownerID
	return m.record, m.err
}

func (m *mockGenerator) CheckCache(sourceURL string) (*models.Podcast, error) {
	m.gotURL = sourceURL
	return m.record, m.err
}

func newTestHandlers(gen *mockGenerator) (*Handlers, *test.MockTaskEnqueuer) {
	enqueuer := &test.MockTaskEnqueuer{}
	limiter := ratelimit.New(rate.Inf, 1)
	return New(gen, storage.NewLocalStore("unused"), enqueuer, limiter), enqueuer
}

func TestPostGenerate(t *testing.T) {
	gen := &mockGenerator{record: &models.Podcast{ID: 1, Status: models.StatusCompleted, AudioURL: "https://pods.example/audio/pc1.mp3"}}
	h, _ := newTestHandlers(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"url":"https://news.example/story-1","owner_id":"owner-1"}`))
	rec := httptest.NewRecorder()
	h.PostGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://news.example/story-1", gen.gotURL)
	assert.Equal(t, "owner-1", gen.gotOwner)

	var got models.Podcast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestPostGenerateRequiresURL(t *testing.T) {
	h, _ := newTestHandlers(&mockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"owner_id":"x"}`))
	rec := httptest.NewRecorder()
	h.PostGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostGenerateDefaultsOwnerToAnonymous(t *testing.T) {
	gen := &mockGenerator{record: &models.Podcast{}}
	h, _ := newTestHandlers(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"url":"https://news.example/story-1"}`))
	h.PostGenerate(httptest.NewRecorder(), req)

	assert.Equal(t, models.AnonymousOwner, gen.gotOwner)
}

func TestPostGenerateRateLimited(t *testing.T) {
	gen := &mockGenerator{record: &models.Podcast{}}
	enqueuer := &test.MockTaskEnqueuer{}
	h := New(gen, storage.NewLocalStore("unused"), enqueuer, ratelimit.New(rate.Limit(0), 1))

	body := `{"url":"https://news.example/story-1","owner_id":"owner-1"}`
	rec := httptest.NewRecorder()
	h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestPostGenerateMapsStepErrors(t *testing.T) {
	gen := &mockGenerator{err: &pipeline.StepError{
		Step: pipeline.StepSynthesize,
		Err:  &tts.SynthesisError{Status: 500, Body: "down"},
	}}
	h, _ := newTestHandlers(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"url":"https://news.example/story-1"}`))
	rec := httptest.NewRecorder()
	h.PostGenerate(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "synthesize", resp.Step)
	assert.Equal(t, "synthesis_error", resp.Category)
}

func TestPostGenerateAsyncEnqueues(t *testing.T) {
	h, enqueuer := newTestHandlers(&mockGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate/async",
		strings.NewReader(`{"url":"https://news.example/story-1","owner_id":"owner-1"}`))
	rec := httptest.NewRecorder()
	h.PostGenerateAsync(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enqueuer.EnqueuedTasks, 1)
	assert.Equal(t, tasks.TypeGeneratePodcast, enqueuer.EnqueuedTasks[0].Type())

	var payload tasks.GeneratePodcastTaskPayload
	require.NoError(t, json.Unmarshal(enqueuer.EnqueuedTasks[0].Payload(), &payload))
	assert.Equal(t, "https://news.example/story-1", payload.SourceURL)
	assert.Equal(t, "owner-1", payload.OwnerID)
}

func TestGetCache(t *testing.T) {
	gen := &mockGenerator{record: &models.Podcast{ID: 2, Status: models.StatusCompleted}}
	h, _ := newTestHandlers(gen)

	req := httptest.NewRequest(http.MethodGet, "/api/cache?url=https://news.example/story-1", nil)
	rec := httptest.NewRecorder()
	h.GetCache(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	gen.record = nil
	rec = httptest.NewRecorder()
	h.GetCache(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeAudio(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), "pc1.mp3", []byte("mp3data"), "audio/mpeg"))
	h := New(&mockGenerator{}, store, &test.MockTaskEnqueuer{}, ratelimit.New(rate.Inf, 1))

	router := mux.NewRouter()
	router.HandleFunc("/audio/{key}", h.ServeAudio)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/pc1.mp3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3data", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/missing.mp3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPodcasts(t *testing.T) {
	_, mock := test.NewMockDB(t)
	h, _ := newTestHandlers(&mockGenerator{})

	rows := sqlmock.NewRows([]string{"id", "source_url", "cache_key", "title", "script",
		"audio_object_key", "owner_id", "status", "processing_time_ms",
		"source_content_length", "script_length", "audio_byte_size", "created_at", "updated_at"})
	mock.ExpectQuery(`SELECT .+ FROM podcasts`).WithArgs("owner-1", 20).WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/podcasts?owner_id=owner-1", nil)
	rec := httptest.NewRecorder()
	h.GetPodcasts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
