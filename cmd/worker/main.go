package main

import (
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"article-podcaster/internal/db"
	"article-podcaster/internal/extract"
	"article-podcaster/internal/pipeline"
	"article-podcaster/internal/storage"
	"article-podcaster/internal/summarize"
	"article-podcaster/internal/tts"
	"article-podcaster/internal/worker"
	"article-podcaster/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			// Generation is upstream-bound (LLM + TTS); keep concurrency
			// low to stay inside upstream rate limits.
			Concurrency: 2,
			Queues: map[string]int{
				"high":    2,
				"default": 1,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				// Exponential backoff: 1min, 2min, 4min, ... capped at 1h.
				delay := time.Minute
				maxDelay := time.Hour
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}
				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	p := &pipeline.Pipeline{
		Extractor:   extract.New(),
		Summarizer:  summarize.New(os.Getenv("LLM_API_URL"), os.Getenv("LLM_API_KEY"), os.Getenv("LLM_MODEL")),
		Synthesizer: tts.New(os.Getenv("ELEVENLABS_API_KEY"), os.Getenv("ELEVENLABS_VOICE_ID"), os.Getenv("ELEVENLABS_API_URL")),
		Store:       db.NewPodcastStore(),
		Objects:     newObjectStore(),
		BaseURL:     baseURL,
	}

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(p)
	mux.HandleFunc(tasks.TypeGeneratePodcast, taskHandler.HandleGeneratePodcastTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}

func newObjectStore() storage.ObjectStore {
	supabaseURL := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if supabaseURL != "" && serviceKey != "" {
		bucket := os.Getenv("STORAGE_BUCKET")
		if bucket == "" {
			bucket = "podcasts"
		}
		return storage.NewSupabaseStore(supabaseURL, serviceKey, bucket)
	}

	dir := os.Getenv("AUDIO_DIR")
	if dir == "" {
		dir = "audio"
	}
	return storage.NewLocalStore(dir)
}
