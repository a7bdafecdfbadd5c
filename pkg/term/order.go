package term

import "strings"

// Order compares two terms, returning a negative number, zero or a positive
// number as a sorts before, with or after b.
type Order func(a, b Term) int

// WordOrder is the default lexicographic ordering on the full word.
func WordOrder(a, b Term) int {
	return strings.Compare(a.word, b.word)
}

// PrefixOrder compares terms using only their first r bytes. Two words that
// agree on r bytes are equal no matter what follows. When either word is
// shorter than r and they agree up to the shorter length, the shorter one
// sorts first. Runs in O(r).
func PrefixOrder(r int) Order {
	return func(v, w Term) int {
		vlen, wlen := len(v.word), len(w.word)
		n := min(r, vlen, wlen)
		for i := 0; i < n; i++ {
			if v.word[i] < w.word[i] {
				return -1
			}
			if v.word[i] > w.word[i] {
				return 1
			}
		}
		if n < r {
			switch {
			case vlen < wlen:
				return -1
			case vlen > wlen:
				return 1
			}
		}
		return 0
	}
}

// WeightOrder orders terms by ascending weight.
func WeightOrder(a, b Term) int {
	switch {
	case a.weight < b.weight:
		return -1
	case a.weight > b.weight:
		return 1
	}
	return 0
}

// ReverseWeightOrder orders terms by descending weight.
func ReverseWeightOrder(a, b Term) int {
	return WeightOrder(b, a)
}

// Counter wraps an Order and records how many times it was invoked.
type Counter struct {
	order Order
	calls int
}

// NewCounter returns a Counter around order.
func NewCounter(order Order) *Counter {
	return &Counter{order: order}
}

// Compare calls the wrapped order and counts the call.
func (c *Counter) Compare(a, b Term) int {
	c.calls++
	return c.order(a, b)
}

// Calls returns the number of comparisons made so far.
func (c *Counter) Calls() int { return c.calls }

// Reset zeroes the call count.
func (c *Counter) Reset() { c.calls = 0 }
