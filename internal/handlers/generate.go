package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"article-podcaster/internal/models"
	"article-podcaster/internal/pipeline"
	"article-podcaster/pkg/tasks"
)

type generateRequest struct {
	URL     string `json:"url"`
	OwnerID string `json:"owner_id"`
}

func (r *generateRequest) normalize() bool {
	if r.OwnerID == "" {
		r.OwnerID = models.AnonymousOwner
	}
	return r.URL != ""
}

// PostGenerate runs the pipeline inline and answers with the finished
// record, or a step-tagged failure.
func (h *Handlers) PostGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.normalize() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	if !h.limiter.Check(req.OwnerID) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	record, err := h.generator.Generate(r.Context(), req.URL, req.OwnerID)
	if err != nil {
		h.writeGenerateError(w, req.URL, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// PostGenerateAsync enqueues the durable binding instead of running the
// pipeline inline.
func (h *Handlers) PostGenerateAsync(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.normalize() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	if !h.limiter.Check(req.OwnerID) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	task, err := tasks.NewGeneratePodcastTask(req.URL, req.OwnerID)
	if err != nil {
		log.Printf("Error creating generation task: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		log.Printf("Error enqueuing generation task: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": info.ID})
}

// GetCache answers the read-only cache probe.
func (h *Handlers) GetCache(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	record, err := h.generator.CheckCache(url)
	if err != nil {
		log.Printf("Error checking cache for %s: %v", url, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not cached"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) writeGenerateError(w http.ResponseWriter, url string, err error) {
	log.Printf("Generation failed for %s: %v", url, err)

	resp := errorResponse{Error: err.Error(), Category: pipeline.Categorize(err)}
	status := http.StatusInternalServerError

	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		resp.Step = string(stepErr.Step)
		switch stepErr.Step {
		case pipeline.StepExtract:
			// The caller handed us a page we cannot narrate.
			status = http.StatusUnprocessableEntity
		case pipeline.StepSummarize, pipeline.StepSynthesize, pipeline.StepStore:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, resp)
}
