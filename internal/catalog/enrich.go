package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ehautefa/mealbot/internal/grocery"
)

// Searcher retrieves raw catalog candidates for an ingredient name.
// Implementations own all network and scraping concerns; no ordering
// guarantee is assumed from the result.
type Searcher interface {
	Search(ctx context.Context, ingredientName string) ([]Candidate, error)
}

// Enricher resolves each grocery item to its best catalog product.
// Lookups fan out concurrently since each is independent and
// read-only; matching itself stays sequential and deterministic.
type Enricher struct {
	searcher Searcher
	matcher  *Matcher
	timeout  time.Duration
}

// NewEnricher builds an enricher. timeout bounds each individual
// lookup; zero disables the per-lookup deadline.
func NewEnricher(searcher Searcher, matcher *Matcher, timeout time.Duration) *Enricher {
	return &Enricher{searcher: searcher, matcher: matcher, timeout: timeout}
}

// Enrich fills in the Product field of every item that finds an
// acceptable match, and returns how many items matched. A failed or
// timed-out lookup degrades to no-match for that item only; partial
// success is the expected steady state, so Enrich never fails.
func (e *Enricher) Enrich(ctx context.Context, list *grocery.List) int {
	candidates := make([][]Candidate, len(list.Items))

	var wg sync.WaitGroup
	wg.Add(len(list.Items))
	for i := range list.Items {
		i := i
		go func() {
			defer wg.Done()
			candidates[i] = e.lookup(ctx, list.Items[i].IngredientName)
		}()
	}
	wg.Wait()

	matched := 0
	for i := range list.Items {
		result := e.matcher.Match(list.Items[i].IngredientName, candidates[i])
		if !result.Matched {
			continue
		}
		list.Items[i].Product = &grocery.MatchedProduct{
			Name:  result.Candidate.Name,
			ID:    result.Candidate.ID,
			Price: result.Candidate.Price,
			Score: result.Score,
		}
		matched++
	}
	return matched
}

func (e *Enricher) lookup(ctx context.Context, name string) []Candidate {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	results, err := e.searcher.Search(ctx, name)
	if err != nil {
		log.Printf("Warning: catalog lookup for %q failed: %v", name, err)
		return nil
	}
	return results
}
