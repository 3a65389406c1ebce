package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"article-podcaster/internal/models"
	"article-podcaster/internal/ratelimit"
	"article-podcaster/internal/storage"
	"article-podcaster/pkg/tasks"
)

// Generator is the orchestrator surface exposed to HTTP callers.
type Generator interface {
	Generate(ctx context.Context, sourceURL, ownerID string) (*models.Podcast, error)
	CheckCache(sourceURL string) (*models.Podcast, error)
}

type Handlers struct {
	generator   Generator
	objects     storage.ObjectStore
	asynqClient tasks.TaskEnqueuer
	limiter     *ratelimit.Limiter
}

func New(generator Generator, objects storage.ObjectStore, asynqClient tasks.TaskEnqueuer, limiter *ratelimit.Limiter) *Handlers {
	return &Handlers{
		generator:   generator,
		objects:     objects,
		asynqClient: asynqClient,
		limiter:     limiter,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Step     string `json:"step,omitempty"`
	Category string `json:"category,omitempty"`
}
