package storage

import (
	"context"
	"time"
)

// ObjectStore is the contract the submission pipeline and the review console
// consume: upload bytes to a key, and mint a time-limited download link for a
// stored reference.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	SignedURL(ctx context.Context, reference string, ttl time.Duration) (string, error)
}

// SignedURLTTL is how long review-console document links stay valid.
const SignedURLTTL = time.Hour
