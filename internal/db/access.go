package db

// RecordAccess notes that an owner retrieved a podcast. Callers treat
// failures as non-fatal bookkeeping problems.
func RecordAccess(ownerID string, podcastID int64) error {
	_, err := DB.Exec("INSERT INTO access_events (podcast_id, owner_id) VALUES ($1, $2)", podcastID, ownerID)
	return err
}
