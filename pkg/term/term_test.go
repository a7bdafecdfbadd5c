package term

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, word string, weight float64) Term {
	t.Helper()
	tm, err := New(word, weight)
	require.NoError(t, err)
	return tm
}

func TestNew(t *testing.T) {
	tm, err := New("bell", 4)
	require.NoError(t, err)
	assert.Equal(t, "bell", tm.Word())
	assert.Equal(t, 4.0, tm.Weight())
	assert.Equal(t, "           4.0\tbell", tm.String())

	_, err = New("bell", 0)
	assert.NoError(t, err, "zero weight is allowed")

	for _, tc := range []struct {
		word   string
		weight float64
	}{
		{"bell", -1},
		{"bell", -0.0001},
		{"bell", math.NaN()},
		{"", 3},
		{"b\xffl", 1},
	} {
		_, err := New(tc.word, tc.weight)
		assert.Truef(t, errors.Is(err, ErrInvalidArgument), "New(%q, %v) = %v", tc.word, tc.weight, err)
	}
}

func TestWordOrder(t *testing.T) {
	words := []string{"bell", "air", "boy", "bat", "be", "b"}
	terms := make([]Term, len(words))
	for i, w := range words {
		terms[i] = mustNew(t, w, 1)
	}
	sort.Slice(terms, func(i, j int) bool { return WordOrder(terms[i], terms[j]) < 0 })

	got := make([]string, len(terms))
	for i, tm := range terms {
		got[i] = tm.Word()
	}
	assert.Equal(t, []string{"air", "b", "bat", "be", "bell", "boy"}, got)
}

func TestPrefixOrder(t *testing.T) {
	testCases := []struct {
		v, w        string
		r           int
		want        int
		description string
	}{
		{"bell", "bells", 3, 0, "both at least r long and share r bytes"},
		{"bell", "belt", 3, 0, "differ only after r"},
		{"bell", "belt", 4, -1, "differ inside r"},
		{"belt", "bell", 4, 1, "differ inside r reversed"},
		{"be", "bell", 3, -1, "shorter word that is a prefix sorts first"},
		{"bell", "be", 3, 1, "longer word sorts after its short prefix"},
		{"be", "be", 3, 0, "identical short words"},
		{"ba", "bell", 3, -1, "short word differing before its end"},
		{"air", "bat", 0, 0, "r of zero matches everything"},
		{"bell", "bells", 5, -1, "key longer than word"},
		{"cat", "b", 1, 1, "single byte"},
	}

	for _, tc := range testCases {
		got := PrefixOrder(tc.r)(mustNew(t, tc.v, 1), mustNew(t, tc.w, 2))
		assert.Equalf(t, tc.want, sign(got), "%s: PrefixOrder(%d)(%q, %q)", tc.description, tc.r, tc.v, tc.w)
	}
}

func TestPrefixOrderIgnoresTail(t *testing.T) {
	long := make([]byte, 1<<16)
	for i := range long {
		long[i] = 'z'
	}
	a := mustNew(t, "ab"+string(long), 1)
	b := mustNew(t, "ab"+string(long[1:])+"a", 1)

	c := NewCounter(PrefixOrder(2))
	assert.Equal(t, 0, c.Compare(a, b))
	assert.Equal(t, 1, c.Calls())
}

func TestPrefixOrderAgreesWithWordOrder(t *testing.T) {
	words := []string{"a", "ab", "abc", "abd", "ac", "b", "ba", "bb", "bba"}
	for r := 0; r <= 3; r++ {
		order := PrefixOrder(r)
		for i := range words {
			for j := i + 1; j < len(words); j++ {
				a, b := mustNew(t, words[i], 1), mustNew(t, words[j], 1)
				assert.LessOrEqualf(t, order(a, b), 0, "r=%d %q vs %q", r, words[i], words[j])
			}
		}
	}
}

func TestWeightOrders(t *testing.T) {
	light, heavy := mustNew(t, "zoo", 1), mustNew(t, "ant", 5)
	same := mustNew(t, "bee", 5)

	assert.Equal(t, -1, WeightOrder(light, heavy))
	assert.Equal(t, 1, WeightOrder(heavy, light))
	assert.Equal(t, 0, WeightOrder(heavy, same), "words do not break ties")

	assert.Equal(t, 1, ReverseWeightOrder(light, heavy))
	assert.Equal(t, -1, ReverseWeightOrder(heavy, light))
	assert.Equal(t, 0, ReverseWeightOrder(same, heavy))
}

func TestCounter(t *testing.T) {
	c := NewCounter(WordOrder)
	a, b := mustNew(t, "a", 1), mustNew(t, "b", 1)
	c.Compare(a, b)
	c.Compare(b, a)
	assert.Equal(t, 2, c.Calls())
	c.Reset()
	assert.Zero(t, c.Calls())
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
