package autocomplete

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAllAndCrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words, weights := randomVocabulary(rng, 500)

	built, err := BuildAll(context.Background(), Kinds, words, weights)
	require.NoError(t, err)
	require.Len(t, built, len(Kinds))
	for i, b := range built {
		assert.Equal(t, Kinds[i], b.Kind)
		assert.NotNil(t, b.Index)
	}

	prefixes := SamplePrefixes(words, 40)
	assert.Equal(t, "", prefixes[0])
	assert.LessOrEqual(t, len(prefixes), 40)
	assert.NoError(t, CrossCheck(built, prefixes, 10))
}

func TestBuildAllFails(t *testing.T) {
	_, err := BuildAll(context.Background(), Kinds, []string{"a", "b"}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildAll(ctx, Kinds, []string{"a"}, []float64{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrossCheckDetectsMismatch(t *testing.T) {
	words := []string{"air", "bat", "bell", "boy"}
	a, err := NewTrie(words, []float64{3, 2, 4, 1})
	require.NoError(t, err)
	b, err := NewBinarySearch(words, []float64{3, 5, 4, 1})
	require.NoError(t, err)

	indexes := []Built{{KindTrie, a}, {KindBinarySearch, b}}
	assert.NoError(t, CrossCheck(indexes, []string{"a"}, 3))
	assert.ErrorIs(t, CrossCheck(indexes, []string{"b"}, 3), ErrMismatch)

	c, err := NewPatricia(words[:3], []float64{3, 2, 4})
	require.NoError(t, err)
	assert.ErrorIs(t, CrossCheck([]Built{{KindTrie, a}, {KindPatricia, c}}, nil, 1), ErrMismatch)
}

func TestSamplePrefixes(t *testing.T) {
	got := SamplePrefixes([]string{"über", "uber", "a"}, 10)
	assert.Equal(t, []string{"", "ü", "üb", "u", "ub", "a"}, got)

	assert.Equal(t, []string{"", "ü"}, SamplePrefixes([]string{"über"}, 2))
}
