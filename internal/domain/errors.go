package domain

import "errors"

var (
	// ErrInvalidQuery signals a bad inbound search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrModelUnavailable signals a model provider failure or timeout.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrMalformedReply signals model output that is not parseable JSON.
	ErrMalformedReply = errors.New("malformed model reply")
	// ErrSchemaViolation signals model output that parsed but broke the reply schema.
	ErrSchemaViolation = errors.New("model reply schema violation")
)
