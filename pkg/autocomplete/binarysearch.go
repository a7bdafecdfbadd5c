package autocomplete

import (
	"sort"
	"unicode/utf8"

	"github.com/bastiangx/wordrank/pkg/term"
	"github.com/charmbracelet/log"
)

// BinarySearch keeps every term in one slice sorted by word and answers
// prefix queries by locating the run of terms sharing the prefix.
type BinarySearch struct {
	terms []term.Term
}

// NewBinarySearch builds a sorted-array index. A word given more than once
// keeps its last weight.
func NewBinarySearch(words []string, weights []float64) (*BinarySearch, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	// stable so the last occurrence of a word ends its run
	sort.SliceStable(terms, func(i, j int) bool {
		return term.WordOrder(terms[i], terms[j]) < 0
	})

	unique := terms[:0]
	for _, t := range terms {
		if n := len(unique); n > 0 && unique[n-1].Word() == t.Word() {
			unique[n-1] = t
			continue
		}
		unique = append(unique, t)
	}

	log.Debugf("Built binary search index: %d terms (%d duplicates dropped)", len(unique), len(words)-len(unique))
	return &BinarySearch{terms: unique}, nil
}

// FirstIndexOf returns the first index i for which order considers a[i]
// equal to key, or -1. The slice must be sorted consistently with order.
// It calls order at most 1+ceil(log2 n) times.
func FirstIndexOf(a []term.Term, key term.Term, order term.Order) int {
	if len(a) == 0 {
		return -1
	}
	// a[low] < key <= a[high], with a[-1] treated as -inf
	low, high := -1, len(a)-1
	for low+1 != high {
		mid := (low + high) / 2
		if order(a[mid], key) < 0 {
			low = mid
		} else {
			high = mid
		}
	}
	if order(a[high], key) == 0 {
		return high
	}
	return -1
}

// LastIndexOf returns the last index i for which order considers a[i]
// equal to key, or -1. Same bound on comparisons as FirstIndexOf.
func LastIndexOf(a []term.Term, key term.Term, order term.Order) int {
	if len(a) == 0 {
		return -1
	}
	// a[low] <= key < a[high], with a[n] treated as +inf
	low, high := 0, len(a)
	for low+1 != high {
		mid := (low + high) / 2
		if order(a[mid], key) > 0 {
			high = mid
		} else {
			low = mid
		}
	}
	if order(a[low], key) == 0 {
		return low
	}
	return -1
}

// matchRange returns the inclusive bounds of the run of terms starting
// with prefix, or -1, -1. An invalid UTF-8 prefix matches nothing.
func (b *BinarySearch) matchRange(prefix string) (int, int) {
	if !utf8.ValidString(prefix) {
		return -1, -1
	}
	key := term.Key(prefix)
	order := term.PrefixOrder(len(prefix))

	first := FirstIndexOf(b.terms, key, order)
	if first == -1 {
		return -1, -1
	}
	return first, LastIndexOf(b.terms, key, order)
}

// TopMatches returns up to k words starting with prefix in descending
// weight order.
func (b *BinarySearch) TopMatches(prefix string, k int) ([]string, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if k == 0 {
		return []string{}, nil
	}

	first, last := b.matchRange(prefix)
	if first == -1 {
		return []string{}, nil
	}

	results := newTopK(k)
	for _, t := range b.terms[first : last+1] {
		results.Offer(t.Word(), t.Weight())
	}
	return results.Words(), nil
}

// TopMatch returns the heaviest word starting with prefix, or "" if none.
func (b *BinarySearch) TopMatch(prefix string) string {
	first, last := b.matchRange(prefix)
	if first == -1 {
		return ""
	}

	best := b.terms[first]
	for _, t := range b.terms[first+1 : last+1] {
		if t.Weight() > best.Weight() {
			best = t
		}
	}
	return best.Word()
}

// WeightOf returns the weight of word, or 0 if it is absent.
func (b *BinarySearch) WeightOf(word string) float64 {
	i := sort.Search(len(b.terms), func(i int) bool {
		return b.terms[i].Word() >= word
	})
	if i < len(b.terms) && b.terms[i].Word() == word {
		return b.terms[i].Weight()
	}
	return 0
}

// Size returns the number of distinct words.
func (b *BinarySearch) Size() int { return len(b.terms) }
