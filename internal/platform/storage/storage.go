package storage

import "context"

type SaveInput struct {
	Name        string
	ContentType string
	Data        []byte
}

type SaveResult struct {
	Key  string
	URL  string
	Size int64
}

// Store persists uploaded blobs (medical leave attachments, training
// materials) and serves them back by key.
type Store interface {
	Save(ctx context.Context, input SaveInput) (*SaveResult, error)
	Delete(ctx context.Context, key string) error
	Open(ctx context.Context, key string) ([]byte, error)
}
