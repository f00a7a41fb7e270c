package storage

import (
	"context"
	"errors"
)

// NoopStore is used in tests and when no uploads directory is configured.
type NoopStore struct{}

func (NoopStore) Save(ctx context.Context, input SaveInput) (*SaveResult, error) {
	return nil, errors.New("storage: no backend configured")
}

func (NoopStore) Delete(ctx context.Context, key string) error { return nil }

func (NoopStore) Open(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("storage: no backend configured")
}
