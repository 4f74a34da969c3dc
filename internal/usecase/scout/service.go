// Package scout orchestrates the grounded-inference pipeline: constrained
// generation, strict reply validation, and catalog allow-list filtering.
// Rate limiting sits in front of it at the transport layer.
package scout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scout/internal/domain"
	"github.com/kailas-cloud/scout/internal/domain/catalog"
	"github.com/kailas-cloud/scout/internal/domain/match"
	"github.com/kailas-cloud/scout/internal/domain/query"
	"github.com/kailas-cloud/scout/internal/domain/result"
	"github.com/kailas-cloud/scout/internal/logger"
	"github.com/kailas-cloud/scout/internal/metrics"
	"github.com/kailas-cloud/scout/internal/prompt"
)

// Service handles one search request end to end. No failure is retried; each
// terminal state surfaces once as a sentinel error.
type Service struct {
	cat          *catalog.Catalog
	model        ModelClient
	systemPrompt string
}

// New creates a search service. The grounding prompt depends only on the
// catalog and is rendered once here.
func New(cat *catalog.Catalog, model ModelClient) (*Service, error) {
	systemPrompt, err := prompt.Build(cat)
	if err != nil {
		return nil, fmt.Errorf("build system prompt: %w", err)
	}
	return &Service{cat: cat, model: model, systemPrompt: systemPrompt}, nil
}

// Search matches the query against the catalog via the model. Returns the
// filtered results in model order and the model's no-match explanation
// (empty when matches were found).
func (s *Service) Search(ctx context.Context, q query.Query) ([]result.Result, string, error) {
	log := logger.FromContext(ctx)

	raw, err := s.model.Generate(ctx, s.systemPrompt, q.Text())
	if err != nil {
		return nil, "", fmt.Errorf("generate: %w", err)
	}

	reply, err := match.ParseReply([]byte(raw))
	if err != nil {
		// Raw model output is operator-only; it must never reach the caller.
		log.Warn("model reply rejected",
			zap.Error(err),
			zap.String("raw_reply", raw),
		)
		reason := "schema"
		if errors.Is(err, domain.ErrMalformedReply) {
			reason = "malformed"
		}
		metrics.ReplyRejectedTotal.WithLabelValues(reason).Inc()
		return nil, "", fmt.Errorf("validate reply: %w", err)
	}

	candidates := reply.Candidates()
	results := filterAllowed(s.cat, candidates)

	if dropped := len(candidates) - len(results); dropped > 0 {
		metrics.SafetyFilterDroppedTotal.Add(float64(dropped))
		log.Info("safety filter dropped out-of-catalog candidates",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(results)),
		)
	}

	return results, reply.NoMatchReason(), nil
}
