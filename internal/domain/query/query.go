// Package query defines the validated inbound search query.
package query

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/scout/internal/domain"
)

// MaxLength is the maximum allowed query length in characters.
const MaxLength = 500

// Query is a validated free-text travel preference.
type Query struct {
	text string
}

// New validates the query text: length 1 to MaxLength inclusive.
func New(text string) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if utf8.RuneCountInString(text) > MaxLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxLength)
	}
	return Query{text: text}, nil
}

// Text returns the query text.
func (q *Query) Text() string { return q.text }
