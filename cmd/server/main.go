package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"article-podcaster/internal/db"
	"article-podcaster/internal/extract"
	"article-podcaster/internal/handlers"
	"article-podcaster/internal/pipeline"
	"article-podcaster/internal/ratelimit"
	"article-podcaster/internal/storage"
	"article-podcaster/internal/summarize"
	"article-podcaster/internal/tts"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	port := getenv("PORT", "8080")
	redisAddr := getenv("REDIS_ADDR", "127.0.0.1:6379")
	baseURL := getenv("BASE_URL", "http://localhost:"+port)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	p := &pipeline.Pipeline{
		Extractor:   extract.New(),
		Summarizer:  summarize.New(os.Getenv("LLM_API_URL"), os.Getenv("LLM_API_KEY"), os.Getenv("LLM_MODEL")),
		Synthesizer: tts.New(os.Getenv("ELEVENLABS_API_KEY"), os.Getenv("ELEVENLABS_VOICE_ID"), os.Getenv("ELEVENLABS_API_URL")),
		Store:       db.NewPodcastStore(),
		Objects:     newObjectStore(),
		BaseURL:     baseURL,
	}

	// One generation per 30s with a small burst, per owner.
	limiter := ratelimit.New(rate.Limit(1.0/30), 3)
	h := handlers.New(p, p.Objects, asynqClient, limiter)

	log.Printf("Starting server on :%s (commit: %s)", port, CommitSHA)
	if err := http.ListenAndServe(":"+port, newRouter(h)); err != nil {
		log.Fatal(err)
	}
}

func newRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/generate", h.PostGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/generate/async", h.PostGenerateAsync).Methods(http.MethodPost)
	r.HandleFunc("/api/cache", h.GetCache).Methods(http.MethodGet)
	r.HandleFunc("/api/podcasts", h.GetPodcasts).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", h.GetStats).Methods(http.MethodGet)
	r.HandleFunc("/audio/{key}", h.ServeAudio).Methods(http.MethodGet)
	r.HandleFunc("/feed/{owner}.rss", h.GetRSSFeed).Methods(http.MethodGet)
	return r
}

// newObjectStore picks Supabase storage when credentials are present and
// falls back to the local audio directory otherwise.
func newObjectStore() storage.ObjectStore {
	supabaseURL := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if supabaseURL != "" && serviceKey != "" {
		bucket := getenv("STORAGE_BUCKET", "podcasts")
		log.Printf("Using Supabase object store (bucket %s)", bucket)
		return storage.NewSupabaseStore(supabaseURL, serviceKey, bucket)
	}

	dir := getenv("AUDIO_DIR", "audio")
	log.Printf("Using local object store (%s)", dir)
	return storage.NewLocalStore(dir)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
