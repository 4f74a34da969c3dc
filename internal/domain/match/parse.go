package match

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/kailas-cloud/scout/internal/domain"
)

// Pointer fields distinguish absent keys from zero values; the schema gate
// must fail on a missing matchScore, not read it as 0.
type candidateDTO struct {
	ID         *float64 `json:"id"`
	Reasoning  *string  `json:"reasoning"`
	MatchScore *float64 `json:"matchScore"`
}

type replyDTO struct {
	Matches       *[]candidateDTO `json:"matches"`
	NoMatchReason *string         `json:"noMatchReason"`
}

// ParseReply parses raw model output into a validated Reply.
// Returns ErrMalformedReply when the payload is not valid JSON and
// ErrSchemaViolation when it is JSON but breaks the reply schema.
// All-or-nothing: one bad candidate rejects the whole reply. The payload is
// never coerced or repaired.
func ParseReply(raw []byte) (Reply, error) {
	if !json.Valid(raw) {
		return Reply{}, fmt.Errorf("%w: not valid JSON", domain.ErrMalformedReply)
	}

	var dto replyDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err)
	}

	if dto.Matches == nil {
		return Reply{}, fmt.Errorf("%w: matches array is required", domain.ErrSchemaViolation)
	}

	candidates := make([]Candidate, 0, len(*dto.Matches))
	for i, m := range *dto.Matches {
		c, err := candidateFromDTO(m)
		if err != nil {
			return Reply{}, fmt.Errorf("match %d: %w", i, err)
		}
		candidates = append(candidates, c)
	}

	reason := ""
	if dto.NoMatchReason != nil {
		reason = *dto.NoMatchReason
	}

	return NewReply(candidates, reason), nil
}

func candidateFromDTO(m candidateDTO) (Candidate, error) {
	if m.ID == nil {
		return Candidate{}, fmt.Errorf("%w: id is required", domain.ErrSchemaViolation)
	}
	if *m.ID != math.Trunc(*m.ID) {
		return Candidate{}, fmt.Errorf("%w: id %v is not an integer", domain.ErrSchemaViolation, *m.ID)
	}
	if m.Reasoning == nil {
		return Candidate{}, fmt.Errorf("%w: reasoning is required", domain.ErrSchemaViolation)
	}
	if m.MatchScore == nil {
		return Candidate{}, fmt.Errorf("%w: matchScore is required", domain.ErrSchemaViolation)
	}
	return NewCandidate(int(*m.ID), *m.Reasoning, *m.MatchScore)
}
