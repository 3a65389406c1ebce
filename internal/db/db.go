package db

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
)

// DB is the global database connection.
var DB *sqlx.DB

// InitDB initializes the database connection and makes sure the schema
// exists. Schema creation is idempotent and runs on every cold start.
func InitDB() {
	var err error
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	DB, err = sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err = InitSchema(); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Println("Database connection established")
}

const schema = `
CREATE TABLE IF NOT EXISTS podcasts (
	id BIGSERIAL PRIMARY KEY,
	source_url TEXT NOT NULL UNIQUE,
	cache_key TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	script TEXT NOT NULL,
	audio_object_key TEXT NOT NULL,
	owner_id TEXT NOT NULL DEFAULT 'anonymous',
	status TEXT NOT NULL DEFAULT 'completed',
	processing_time_ms BIGINT NOT NULL DEFAULT 0,
	source_content_length INTEGER NOT NULL DEFAULT 0,
	script_length INTEGER NOT NULL DEFAULT 0,
	audio_byte_size BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS access_events (
	id BIGSERIAL PRIMARY KEY,
	podcast_id BIGINT NOT NULL REFERENCES podcasts(id) ON DELETE CASCADE,
	owner_id TEXT NOT NULL,
	accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS processing_log (
	id BIGSERIAL PRIMARY KEY,
	podcast_id BIGINT REFERENCES podcasts(id) ON DELETE SET NULL,
	source_url TEXT NOT NULL,
	category TEXT NOT NULL,
	message TEXT NOT NULL,
	trace TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema creates the tables if they do not exist yet.
func InitSchema() error {
	_, err := DB.Exec(schema)
	return err
}
