package scout

import (
	"github.com/kailas-cloud/scout/internal/domain/catalog"
	"github.com/kailas-cloud/scout/internal/domain/match"
	"github.com/kailas-cloud/scout/internal/domain/result"
)

// filterAllowed is the last line of defense against hallucinated items.
// Candidates whose id is not in the catalog are silently dropped; that is the
// designed response to a misbehaving model, not an error. Survivors keep
// their input order (the model is instructed to pre-sort by score), and every
// item field in the output comes from the catalog entry, never from the model.
func filterAllowed(cat *catalog.Catalog, candidates []match.Candidate) []result.Result {
	results := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		item, ok := cat.Get(c.ID())
		if !ok {
			continue
		}
		results = append(results, result.New(item, c))
	}
	return results
}
