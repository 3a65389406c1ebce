package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"article-podcaster/internal/db"
	"article-podcaster/internal/feed"
)

const feedItemLimit = 50

// GetRSSFeed renders an owner's clips as a podcast RSS feed.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID := vars["owner"]

	podcasts, err := db.ListPodcastsByOwner(ownerID, feedItemLimit)
	if err != nil {
		log.Printf("Error listing podcasts for feed %s: %v", ownerID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rss, err := feed.GenerateRSS(ownerID, podcasts, r)
	if err != nil {
		log.Printf("Error generating RSS for %s: %v", ownerID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
