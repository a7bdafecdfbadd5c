// Package autocomplete answers weighted prefix queries over a static
// vocabulary. Every implementation is built once from parallel word and
// weight slices and is read-only afterwards, so a built index may be queried
// from many goroutines at once.
package autocomplete

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/wordrank/pkg/term"
)

var (
	// ErrNullInput is returned when a required slice is nil.
	ErrNullInput = errors.New("null input")
	// ErrInvalidArgument is returned for mismatched slice lengths, empty
	// words, negative weights and negative k.
	ErrInvalidArgument = term.ErrInvalidArgument
)

// Autocompletor is the query surface shared by every index.
type Autocompletor interface {
	// TopMatches returns up to k words starting with prefix, highest weight first.
	TopMatches(prefix string, k int) ([]string, error)

	// TopMatch returns the highest weight word starting with prefix, or "".
	TopMatch(prefix string) string

	// WeightOf returns the weight of word, or 0 when it is not in the index.
	WeightOf(word string) float64

	// Size returns the number of distinct words held.
	Size() int
}

// Kind names an Autocompletor implementation.
type Kind string

const (
	KindBinarySearch Kind = "binary"
	KindTrie         Kind = "trie"
	KindPatricia     Kind = "patricia"
)

// Kinds lists every implementation in a stable order.
var Kinds = []Kind{KindBinarySearch, KindTrie, KindPatricia}

// ParseKind maps a config or flag value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBinarySearch, KindTrie, KindPatricia:
		return k, nil
	case "binarysearch", "sorted":
		return KindBinarySearch, nil
	}
	return "", fmt.Errorf("%w: unknown index kind %q", ErrInvalidArgument, s)
}

// New builds the index named by kind.
func New(kind Kind, words []string, weights []float64) (Autocompletor, error) {
	switch kind {
	case KindBinarySearch:
		return NewBinarySearch(words, weights)
	case KindTrie:
		return NewTrie(words, weights)
	case KindPatricia:
		return NewPatricia(words, weights)
	}
	return nil, fmt.Errorf("%w: unknown index kind %q", ErrInvalidArgument, kind)
}

// buildTerms validates parallel slices and pairs them up in input order.
func buildTerms(words []string, weights []float64) ([]term.Term, error) {
	if words == nil || weights == nil {
		return nil, fmt.Errorf("%w: words and weights are required", ErrNullInput)
	}
	if len(words) != len(weights) {
		return nil, fmt.Errorf("%w: %d words but %d weights", ErrInvalidArgument, len(words), len(weights))
	}
	terms := make([]term.Term, len(words))
	for i := range words {
		t, err := term.New(words[i], weights[i])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		terms[i] = t
	}
	return terms, nil
}

func checkK(k int) error {
	if k < 0 {
		return fmt.Errorf("%w: negative k %d", ErrInvalidArgument, k)
	}
	return nil
}
