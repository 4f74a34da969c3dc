// Package result defines the trusted search result sent to callers.
package result

import (
	"github.com/kailas-cloud/scout/internal/domain/catalog"
	"github.com/kailas-cloud/scout/internal/domain/match"
)

// Result is a catalog item paired with the model's verdict. Every field
// describing the item comes from the catalog entry; only reasoning and score
// come from the model.
type Result struct {
	item      catalog.Item
	reasoning string
	score     float64
}

// New builds a result from a catalog item and the candidate that matched it.
func New(item catalog.Item, c match.Candidate) Result {
	return Result{
		item:      item,
		reasoning: c.Reasoning(),
		score:     c.Score(),
	}
}

// ID returns the catalog item id.
func (r *Result) ID() int { return r.item.ID() }

// Title returns the catalog item title.
func (r *Result) Title() string { return r.item.Title() }

// Location returns the catalog item location.
func (r *Result) Location() string { return r.item.Location() }

// Price returns the catalog item price.
func (r *Result) Price() float64 { return r.item.Price() }

// Tags returns the catalog item tags.
func (r *Result) Tags() []string { return r.item.Tags() }

// Reasoning returns the model's explanation for the match.
func (r *Result) Reasoning() string { return r.reasoning }

// Score returns the model-assigned match score.
func (r *Result) Score() float64 { return r.score }
