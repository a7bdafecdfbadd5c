// Package term holds the weighted word value shared by every autocompleter
// and the orderings used to sort, search and rank it.
package term

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrInvalidArgument is returned when a Term would carry an empty or non UTF-8
// word or a negative weight.
var ErrInvalidArgument = errors.New("invalid argument")

// Term is an immutable word and its weight.
type Term struct {
	word   string
	weight float64
}

// New creates a Term. The word must be valid UTF-8 and the weight non-negative.
func New(word string, weight float64) (Term, error) {
	if word == "" {
		return Term{}, fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}
	if !utf8.ValidString(word) {
		return Term{}, fmt.Errorf("%w: word %q is not valid UTF-8", ErrInvalidArgument, word)
	}
	if weight < 0 || math.IsNaN(weight) {
		return Term{}, fmt.Errorf("%w: negative weight %v for %q", ErrInvalidArgument, weight, word)
	}
	return Term{word: word, weight: weight}, nil
}

// Key returns a Term used only as a search key. It skips validation so the
// empty prefix can be searched for.
func Key(prefix string) Term {
	return Term{word: prefix}
}

// Word returns the term's word.
func (t Term) Word() string { return t.word }

// Weight returns the term's weight.
func (t Term) Weight() float64 { return t.weight }

func (t Term) String() string {
	return fmt.Sprintf("%14.1f\t%s", t.weight, t.word)
}
