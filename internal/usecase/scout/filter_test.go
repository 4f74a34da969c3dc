package scout

import (
	"testing"

	"github.com/kailas-cloud/scout/internal/domain/catalog"
	"github.com/kailas-cloud/scout/internal/domain/match"
)

func mustCandidate(t *testing.T, id int, reasoning string, score float64) match.Candidate {
	t.Helper()
	c, err := match.NewCandidate(id, reasoning, score)
	if err != nil {
		t.Fatalf("NewCandidate: %v", err)
	}
	return c
}

func TestFilterAllowed_DropsEveryOutOfCatalogID(t *testing.T) {
	cat := catalog.Default()

	candidates := []match.Candidate{
		mustCandidate(t, 99, "invented", 90),
		mustCandidate(t, 0, "zero", 80),
		mustCandidate(t, -1, "negative", 70),
		mustCandidate(t, 1000000, "far out of range", 60),
		mustCandidate(t, 6, "just past the end", 50),
	}

	results := filterAllowed(cat, candidates)
	if len(results) != 0 {
		t.Fatalf("expected all candidates dropped, got %d results", len(results))
	}
}

func TestFilterAllowed_OnlyCatalogIDsSurvive(t *testing.T) {
	cat := catalog.Default()

	candidates := []match.Candidate{
		mustCandidate(t, 99, "invented", 95),
		mustCandidate(t, 2, "valid", 85),
		mustCandidate(t, -5, "negative", 75),
		mustCandidate(t, 4, "valid too", 65),
	}

	results := filterAllowed(cat, candidates)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !cat.Has(r.ID()) {
			t.Errorf("result id %d is not in the catalog", r.ID())
		}
	}
}

func TestFilterAllowed_PreservesInputOrder(t *testing.T) {
	cat := catalog.Default()

	// Deliberately not sorted by score: the filter must not re-sort.
	candidates := []match.Candidate{
		mustCandidate(t, 2, "second item first", 40),
		mustCandidate(t, 99, "dropped", 100),
		mustCandidate(t, 5, "then fifth", 90),
		mustCandidate(t, 1, "then first", 10),
	}

	results := filterAllowed(cat, candidates)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantOrder := []int{2, 5, 1}
	for i, want := range wantOrder {
		if results[i].ID() != want {
			t.Errorf("results[%d].ID() = %d, expected %d", i, results[i].ID(), want)
		}
	}
}

func TestFilterAllowed_DuplicateIDsKeptPerOccurrence(t *testing.T) {
	cat := catalog.Default()

	candidates := []match.Candidate{
		mustCandidate(t, 3, "first mention", 90),
		mustCandidate(t, 3, "second mention", 80),
	}

	results := filterAllowed(cat, candidates)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Reasoning() != "first mention" || results[1].Reasoning() != "second mention" {
		t.Error("each occurrence keeps its own candidate fields")
	}
}

func TestFilterAllowed_FieldProvenance(t *testing.T) {
	cat := catalog.Default()

	results := filterAllowed(cat, []match.Candidate{
		mustCandidate(t, 4, "surf fits", 92),
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	item, _ := cat.Get(4)
	if r.Title() != item.Title() || r.Location() != item.Location() || r.Price() != item.Price() {
		t.Error("item fields must come from the catalog entry")
	}
	tags := r.Tags()
	wantTags := item.Tags()
	if len(tags) != len(wantTags) {
		t.Fatalf("tags = %v, expected %v", tags, wantTags)
	}
	for i := range tags {
		if tags[i] != wantTags[i] {
			t.Errorf("tags[%d] = %q, expected %q", i, tags[i], wantTags[i])
		}
	}
	if r.Reasoning() != "surf fits" || r.Score() != 92 {
		t.Error("reasoning and score must come from the candidate")
	}
}

func TestFilterAllowed_EmptyInput(t *testing.T) {
	results := filterAllowed(catalog.Default(), nil)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
