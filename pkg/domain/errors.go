package domain

import (
	"errors"
)

var (
	ErrMissingAPIKey     = errors.New("api key not configured")
	ErrNoSearchTerms     = errors.New("at least one artist or genre is required")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrArtistNotFound    = errors.New("artist not found")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
