package storage

import (
	"context"
	"errors"
	"io"
)

// DisabledStore rejects every upload. Used when no image host is configured
// so report submission fails loudly instead of silently dropping photos.
type DisabledStore struct{}

// Upload always fails.
func (DisabledStore) Upload(ctx context.Context, folder string, file io.Reader) (string, error) {
	return "", errors.New("photo storage not configured")
}
