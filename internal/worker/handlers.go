package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"article-podcaster/internal/models"
	"article-podcaster/internal/pipeline"
	"article-podcaster/pkg/tasks"
)

// Generator is the slice of the orchestrator the worker needs.
type Generator interface {
	Generate(ctx context.Context, sourceURL, ownerID string) (*models.Podcast, error)
}

// TaskHandler processes durable generation tasks. It runs the same
// orchestrator as the inline HTTP route; only the transport differs.
type TaskHandler struct {
	generator Generator
}

func NewTaskHandler(generator Generator) *TaskHandler {
	return &TaskHandler{generator: generator}
}

func (h *TaskHandler) HandleGeneratePodcastTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.GeneratePodcastTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Generating podcast for %s (owner %s)", p.SourceURL, p.OwnerID)

	record, err := h.generator.Generate(ctx, p.SourceURL, p.OwnerID)
	if err != nil {
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			log.Printf("Generation failed at step %s for %s: %v", stepErr.Step, p.SourceURL, stepErr.Err)
		}
		return fmt.Errorf("failed to generate podcast for %s: %w", p.SourceURL, err)
	}

	log.Printf("Generated podcast %d for %s (%d audio bytes in %dms)",
		record.ID, p.SourceURL, record.AudioByteSize, record.ProcessingTimeMs)
	return nil
}
