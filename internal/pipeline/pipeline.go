// Package pipeline is the generation orchestrator: it turns a source URL
// into a stored, narrated audio clip. Both transport bindings (the inline
// HTTP route and the asynq worker) run the same implementation.
package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"article-podcaster/internal/extract"
	"article-podcaster/internal/models"
	"article-podcaster/internal/storage"
)

// ContentExtractor fetches a page and reduces it to bounded plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// ScriptSummarizer adapts extracted text into a narration script.
type ScriptSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SpeechSynthesizer turns a script into audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// Store is the persistence adapter contract the orchestrator needs.
// Implemented by db.PodcastStore, mocked in tests.
type Store interface {
	ComputeCacheKey(sourceURL string) string
	GetByCacheKey(cacheKey string) (*models.Podcast, error)
	Save(p *models.Podcast) (int64, error)
	RecordAccess(ownerID string, podcastID int64) error
	LogError(e *models.ProcessingLogEntry) error
}

// Pipeline wires the steps together.
type Pipeline struct {
	Extractor   ContentExtractor
	Summarizer  ScriptSummarizer
	Synthesizer SpeechSynthesizer
	Store       Store
	Objects     storage.ObjectStore

	// BaseURL is the public prefix for derived audio URLs.
	BaseURL string
}

// Generate runs the full pipeline for sourceURL on behalf of ownerID.
// A completed record for the same URL short-circuits to the cached copy.
// On success the record is persisted best-effort: a bookkeeping failure
// never downgrades a playable result into an error.
func (p *Pipeline) Generate(ctx context.Context, sourceURL, ownerID string) (*models.Podcast, error) {
	if ownerID == "" {
		ownerID = models.AnonymousOwner
	}
	start := time.Now()
	cacheKey := p.Store.ComputeCacheKey(sourceURL)

	cached, err := p.Store.GetByCacheKey(cacheKey)
	if err != nil {
		// A broken cache lookup is not worth failing the request over;
		// regenerate instead.
		log.Printf("Cache lookup failed for %s: %v", sourceURL, err)
	}
	if cached != nil && cached.Status == models.StatusCompleted {
		if err := p.Store.RecordAccess(ownerID, cached.ID); err != nil {
			log.Printf("Failed to record access for podcast %d: %v", cached.ID, err)
		}
		cached.AudioURL = p.audioURL(cached.AudioObjectKey)
		return cached, nil
	}

	// Text extraction and title derivation are independent; run them in
	// parallel and join before summarizing. Only the text branch can
	// abort the pipeline — the title always degrades to a fallback.
	var (
		wg         sync.WaitGroup
		text       string
		extractErr error
		title      string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		text, extractErr = p.Extractor.Extract(ctx, sourceURL)
	}()
	go func() {
		defer wg.Done()
		title = extract.DeriveTitle(sourceURL)
	}()
	wg.Wait()
	if extractErr != nil {
		return nil, p.fail(StepExtract, sourceURL, extractErr)
	}

	script, err := p.Summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, p.fail(StepSummarize, sourceURL, err)
	}

	audio, err := p.Synthesizer.Synthesize(ctx, script)
	if err != nil {
		return nil, p.fail(StepSynthesize, sourceURL, err)
	}

	objectKey := cacheKey + ".mp3"
	if err := p.Objects.Put(ctx, objectKey, audio, "audio/mpeg"); err != nil {
		return nil, p.fail(StepStore, sourceURL, err)
	}

	record := &models.Podcast{
		SourceURL:           sourceURL,
		CacheKey:            cacheKey,
		Title:               title,
		Script:              script,
		AudioObjectKey:      objectKey,
		OwnerID:             ownerID,
		Status:              models.StatusCompleted,
		ProcessingTimeMs:    time.Since(start).Milliseconds(),
		SourceContentLength: len(text),
		ScriptLength:        len(script),
		AudioByteSize:       int64(len(audio)),
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	// Best-effort save: the audio artifact already exists, so a failed
	// insert is logged and swallowed rather than surfaced.
	id, err := p.Store.Save(record)
	if err != nil {
		log.Printf("Failed to save podcast record for %s: %v", sourceURL, err)
		p.logError(StepStore, sourceURL, err)
	} else {
		record.ID = id
		if err := p.Store.RecordAccess(ownerID, id); err != nil {
			log.Printf("Failed to record access for podcast %d: %v", id, err)
		}
	}

	record.AudioURL = p.audioURL(objectKey)
	return record, nil
}

// CheckCache returns the completed record for sourceURL without running
// any pipeline step, or nil when there is none.
func (p *Pipeline) CheckCache(sourceURL string) (*models.Podcast, error) {
	cached, err := p.Store.GetByCacheKey(p.Store.ComputeCacheKey(sourceURL))
	if err != nil || cached == nil {
		return nil, err
	}
	cached.AudioURL = p.audioURL(cached.AudioObjectKey)
	return cached, nil
}

func (p *Pipeline) audioURL(objectKey string) string {
	return strings.TrimRight(p.BaseURL, "/") + "/audio/" + objectKey
}

// fail annotates err with the step that produced it and records a
// diagnostic entry before handing the failure back to the caller.
func (p *Pipeline) fail(step Step, sourceURL string, err error) error {
	p.logError(step, sourceURL, err)
	return &StepError{Step: step, Err: err}
}

func (p *Pipeline) logError(step Step, sourceURL string, err error) {
	entry := &models.ProcessingLogEntry{
		SourceURL: sourceURL,
		Category:  Categorize(err),
		Message:   err.Error(),
	}
	if entry.Category == "" {
		entry.Category = string(step)
	}
	if logErr := p.Store.LogError(entry); logErr != nil {
		log.Printf("Failed to write processing log for %s: %v", sourceURL, logErr)
	}
}
