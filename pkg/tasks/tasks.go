package tasks

import (
	"encoding/json"
	"github.com/hibiken/asynq"
)

const (
	TypeGeneratePodcast = "podcast:generate"
)

type GeneratePodcastTaskPayload struct {
	SourceURL string
	OwnerID   string
}

func NewGeneratePodcastTask(sourceURL, ownerID string) (*asynq.Task, error) {
	payload, err := json.Marshal(GeneratePodcastTaskPayload{
		SourceURL: sourceURL,
		OwnerID:   ownerID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGeneratePodcast, payload), nil
}
