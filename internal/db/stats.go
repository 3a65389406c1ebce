package db

// Stats aggregates the whole podcast table for the reporting endpoint.
type Stats struct {
	Count               int     `db:"count" json:"count"`
	DistinctOwners      int     `db:"distinct_owners" json:"distinct_owners"`
	AvgProcessingTimeMs float64 `db:"avg_processing_time_ms" json:"avg_processing_time_ms"`
	TotalAudioBytes     int64   `db:"total_audio_bytes" json:"total_audio_bytes"`
	CompletedCount      int     `db:"completed_count" json:"completed_count"`
	FailedCount         int     `db:"failed_count" json:"failed_count"`
}

// AggregateStats computes the stats in a single query.
func AggregateStats() (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS count,
			COUNT(DISTINCT owner_id) AS distinct_owners,
			COALESCE(AVG(processing_time_ms), 0) AS avg_processing_time_ms,
			COALESCE(SUM(audio_byte_size), 0) AS total_audio_bytes,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_count,
			COUNT(*) FILTER (WHERE status = 'failed') AS failed_count
		FROM podcasts
	`
	stats := Stats{}
	if err := DB.Get(&stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
