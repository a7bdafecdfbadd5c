package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrMismatch is returned by CrossCheck when two indexes disagree.
var ErrMismatch = errors.New("indexes disagree")

// Built pairs an index with the kind it was built as.
type Built struct {
	Kind  Kind
	Index Autocompletor
}

// BuildAll builds one index per kind concurrently from the same vocabulary.
// The result keeps the order of kinds. The first build error cancels ctx for
// the remaining builds and is returned.
func BuildAll(ctx context.Context, kinds []Kind, words []string, weights []float64) ([]Built, error) {
	built := make([]Built, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx, err := New(kind, words, weights)
			if err != nil {
				return fmt.Errorf("building %s index: %w", kind, err)
			}
			built[i] = Built{Kind: kind, Index: idx}
			log.Debugf("Built %s index with %d words", kind, idx.Size())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return built, nil
}

// CrossCheck runs TopMatches(prefix, k) and TopMatch(prefix) for every prefix
// against every index and compares each answer with the first index's.
func CrossCheck(indexes []Built, prefixes []string, k int) error {
	if len(indexes) < 2 {
		return nil
	}
	ref := indexes[0]
	for _, other := range indexes[1:] {
		if ref.Index.Size() != other.Index.Size() {
			return fmt.Errorf("%w: %s holds %d words, %s holds %d",
				ErrMismatch, ref.Kind, ref.Index.Size(), other.Kind, other.Index.Size())
		}
	}

	for _, prefix := range prefixes {
		want, err := ref.Index.TopMatches(prefix, k)
		if err != nil {
			return err
		}
		wantTop := ref.Index.TopMatch(prefix)
		for _, other := range indexes[1:] {
			got, err := other.Index.TopMatches(prefix, k)
			if err != nil {
				return err
			}
			if !slices.Equal(want, got) {
				return fmt.Errorf("%w: prefix %q: %s returned %v, %s returned %v",
					ErrMismatch, prefix, ref.Kind, want, other.Kind, got)
			}
			if top := other.Index.TopMatch(prefix); top != wantTop {
				return fmt.Errorf("%w: prefix %q: %s top match %q, %s top match %q",
					ErrMismatch, prefix, ref.Kind, wantTop, other.Kind, top)
			}
		}
	}
	return nil
}

// SamplePrefixes returns the empty prefix plus the distinct leading one and
// two character prefixes of words, capped at limit entries.
func SamplePrefixes(words []string, limit int) []string {
	seen := map[string]bool{"": true}
	prefixes := []string{""}
	for _, w := range words {
		n := 0
		for i := range w {
			if n == 2 {
				break
			}
			n++
			_, size := utf8.DecodeRuneInString(w[i:])
			if len(prefixes) >= limit {
				return prefixes
			}
			p := w[:i+size]
			if !seen[p] {
				seen[p] = true
				prefixes = append(prefixes, p)
			}
		}
	}
	return prefixes
}
