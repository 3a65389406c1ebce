package feed

import (
	"fmt"
	"net/http"
	"os"

	"github.com/eduncan911/podcast"

	"article-podcaster/internal/models"
)

func getBaseURL(r *http.Request) string {
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		return baseURL
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.Header.Get("X-Forwarded-Proto") != "" {
			scheme = r.Header.Get("X-Forwarded-Proto")
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GenerateRSS renders an owner's completed podcasts as an RSS feed with
// mp3 enclosures.
func GenerateRSS(ownerID string, podcasts []models.Podcast, r *http.Request) (string, error) {
	baseURL := getBaseURL(r)

	p := podcast.New(
		fmt.Sprintf("%s's Articles", ownerID),
		fmt.Sprintf("%s/feed/%s.rss", baseURL, ownerID),
		"Short narrated clips generated from web articles.",
		nil, nil,
	)

	for i := range podcasts {
		pod := podcasts[i]
		item := podcast.Item{
			Title:       pod.Title,
			Description: pod.Script,
			Link:        pod.SourceURL,
			PubDate:     &pod.CreatedAt,
		}
		item.AddEnclosure(fmt.Sprintf("%s/audio/%s", baseURL, pod.AudioObjectKey), podcast.MP3, pod.AudioByteSize)
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}
