// Package match holds the untrusted model reply: candidate matches that have
// passed schema validation but not yet the catalog allow-list filter.
package match

import (
	"fmt"

	"github.com/kailas-cloud/scout/internal/domain"
)

// Score bounds for a candidate match.
const (
	MinScore = 0
	MaxScore = 100
)

// Candidate is a single model-proposed match. Its id is untrusted until the
// allow-list filter has resolved it against the catalog.
type Candidate struct {
	id        int
	reasoning string
	score     float64
}

// NewCandidate validates and creates a candidate match.
// The id may be any integer; out-of-catalog ids are the filter's concern.
func NewCandidate(id int, reasoning string, score float64) (Candidate, error) {
	if reasoning == "" {
		return Candidate{}, fmt.Errorf("%w: reasoning is required", domain.ErrSchemaViolation)
	}
	if score < MinScore || score > MaxScore {
		return Candidate{}, fmt.Errorf("%w: matchScore %v out of range [%d, %d]",
			domain.ErrSchemaViolation, score, MinScore, MaxScore)
	}
	return Candidate{id: id, reasoning: reasoning, score: score}, nil
}

// ID returns the model-proposed item id.
func (c *Candidate) ID() int { return c.id }

// Reasoning returns the model's explanation for the match.
func (c *Candidate) Reasoning() string { return c.reasoning }

// Score returns the model-assigned match score (0-100).
func (c *Candidate) Score() float64 { return c.score }

// Reply is a validated model response: candidates in model order plus an
// optional explanation for an empty match list.
type Reply struct {
	candidates    []Candidate
	noMatchReason string
}

// NewReply creates a reply from validated candidates.
func NewReply(candidates []Candidate, noMatchReason string) Reply {
	return Reply{
		candidates:    append([]Candidate(nil), candidates...),
		noMatchReason: noMatchReason,
	}
}

// Candidates returns the candidates in the order the model produced them.
func (r *Reply) Candidates() []Candidate { return append([]Candidate(nil), r.candidates...) }

// NoMatchReason returns the model's explanation for an empty match list,
// or "" when none was given.
func (r *Reply) NoMatchReason() string { return r.noMatchReason }
