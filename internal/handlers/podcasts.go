package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"article-podcaster/internal/db"
	"article-podcaster/internal/models"
	"article-podcaster/internal/storage"
)

const maxListLimit = 100

// GetPodcasts lists an owner's generated clips, newest first.
func (h *Handlers) GetPodcasts(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		ownerID = models.AnonymousOwner
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > maxListLimit {
		limit = 20
	}

	podcasts, err := db.ListPodcastsByOwner(ownerID, limit)
	if err != nil {
		log.Printf("Error listing podcasts for %s: %v", ownerID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	if podcasts == nil {
		podcasts = []models.Podcast{}
	}
	writeJSON(w, http.StatusOK, podcasts)
}

// GetStats reports table-wide aggregates.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := db.AggregateStats()
	if err != nil {
		log.Printf("Error aggregating stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ServeAudio streams a stored audio object.
func (h *Handlers) ServeAudio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	data, err := h.objects.Get(r.Context(), key)
	if err != nil {
		var notFound *storage.NotFoundError
		if errors.As(err, &notFound) {
			http.Error(w, "Audio not found", http.StatusNotFound)
			return
		}
		log.Printf("Error reading audio object %s: %v", key, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
