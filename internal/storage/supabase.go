package storage

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps objects in a Supabase storage bucket.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore builds a store against projectURL (the project base
// URL, without the /storage/v1 suffix) using a service-role key.
func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		client: storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil),
		bucket: bucket,
	}
}

func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return &UnavailableError{Err: fmt.Errorf("uploading %s: %w", key, err)}
	}
	return nil
}

func (s *SupabaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("downloading %s: %w", key, err)}
	}
	if len(data) == 0 {
		return nil, &NotFoundError{Key: key}
	}
	return data, nil
}
