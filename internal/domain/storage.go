package domain

import (
	"context"
	"io"
)

// ObjectStore stores event image objects under opaque keys.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
}

// URLSigner produces a signed, time-limited URL for a stored object key.
type URLSigner interface {
	SignedURL(key string) (string, error)
}

// Mailer sends transactional mail. Implementations may be no-ops.
type Mailer interface {
	Send(to, subject, html, text string) error
}
