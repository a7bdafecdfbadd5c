package autocomplete

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkBounds verifies every node's cached bound equals the heaviest word
// at or below it.
func checkBounds(t *testing.T, tr *Trie) {
	t.Helper()
	var walk func(i int) float64
	walk = func(i int) float64 {
		n := tr.nodes[i]
		var m float64
		if n.isWord {
			m = n.weight
		}
		for j, e := range n.edges {
			if j > 0 {
				require.Less(t, n.edges[j-1].label, e.label, "edges must stay sorted")
			}
			m = max(m, walk(int(e.child)))
		}
		require.Equalf(t, m, n.subtreeMax, "bound of node %d (%q)", i, n.word)
		return m
	}
	walk(0)
}

func TestTrieNodesPerRune(t *testing.T) {
	tr, err := NewTrie([]string{"bell", "bells", "belt"}, []float64{1, 2, 3})
	require.NoError(t, err)
	// root, b, e, l, l, s, t
	assert.Len(t, tr.nodes, 7)
	checkBounds(t, tr)

	again, err := NewTrie([]string{"bell", "bell"}, []float64{1, 2})
	require.NoError(t, err)
	assert.Len(t, again.nodes, 5, "re-inserting a word adds no nodes")
	assert.Equal(t, 1, again.Size())
}

func TestTrieWeightDecrease(t *testing.T) {
	words := []string{"ape", "apex", "apple", "ape"}
	weights := []float64{10, 4, 6, 1}

	tr, err := NewTrie(words, weights)
	require.NoError(t, err)
	checkBounds(t, tr)

	start, ok := tr.walk("ap")
	require.True(t, ok)
	assert.Equal(t, 6.0, tr.nodes[start].subtreeMax, "stale bound of 10 must be dropped")

	got, err := tr.TopMatches("ap", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "apex"}, got)
	assert.Equal(t, "apple", tr.TopMatch("ap"))
	assert.Equal(t, "apex", tr.TopMatch("ape"))
	assert.Equal(t, 1.0, tr.WeightOf("ape"))
}

func TestTrieBoundsRandomised(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words, weights := randomVocabulary(rng, 3000)
	tr, err := NewTrie(words, weights)
	require.NoError(t, err)
	checkBounds(t, tr)
}

func TestTrieTopMatchPrefixWithoutWordsBelow(t *testing.T) {
	tr, err := NewTrie([]string{"car"}, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, "car", tr.TopMatch("ca"))
	assert.Equal(t, "car", tr.TopMatch("car"))
	assert.Equal(t, "", tr.TopMatch("cart"))
	assert.Equal(t, 0.0, tr.WeightOf("ca"))
}

func TestTrieTopMatchesAcrossBranches(t *testing.T) {
	// one heavy word per branch; the light words sit under bounds the
	// search never needs to expand
	var words []string
	var weights []float64
	for c := 'a'; c <= 'z'; c++ {
		words = append(words, string(c)+"heavy")
		weights = append(weights, float64(1000+c))
		for i := 0; i < 50; i++ {
			words = append(words, string(c)+"light"+string(rune('a'+i%26))+string(rune('a'+i/26)))
			weights = append(weights, 1)
		}
	}
	tr, err := NewTrie(words, weights)
	require.NoError(t, err)

	got, err := tr.TopMatches("", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"zheavy", "yheavy", "xheavy"}, got)
}
