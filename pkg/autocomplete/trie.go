package autocomplete

import (
	"container/heap"
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// edge links a node to the child reached by label. A node's edges are kept
// sorted by label.
type edge struct {
	label rune
	child int32
}

type node struct {
	label      rune
	edges      []edge
	isWord     bool
	word       string
	weight     float64
	subtreeMax float64 // max weight of any word at or below this node
}

// Trie is a rune trie whose nodes cache the heaviest weight in their
// subtree. Nodes live in a single slice owned by the Trie and refer to their
// children by index; index 0 is the root.
type Trie struct {
	nodes []node
	size  int
}

// NewTrie builds a trie index. A word given more than once keeps its last
// weight.
func NewTrie(words []string, weights []float64) (*Trie, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	t := &Trie{nodes: []node{{label: '-'}}}
	for _, tm := range terms {
		t.add(tm.Word(), tm.Weight())
	}

	log.Debugf("Built trie index: %d words, %d nodes", t.size, len(t.nodes))
	return t, nil
}

// child returns the index of the child of i labelled r.
func (t *Trie) child(i int, r rune) (int, bool) {
	edges := t.nodes[i].edges
	j := sort.Search(len(edges), func(j int) bool { return edges[j].label >= r })
	if j < len(edges) && edges[j].label == r {
		return int(edges[j].child), true
	}
	return 0, false
}

// addChild creates a child of i labelled r and returns its index.
func (t *Trie) addChild(i int, r rune) int {
	c := len(t.nodes)
	t.nodes = append(t.nodes, node{label: r})

	edges := t.nodes[i].edges
	j := sort.Search(len(edges), func(j int) bool { return edges[j].label >= r })
	edges = append(edges, edge{})
	copy(edges[j+1:], edges[j:])
	edges[j] = edge{label: r, child: int32(c)}
	t.nodes[i].edges = edges
	return c
}

// add inserts word, raising the cached bound of every node on its path.
// When word was already present with a larger weight the path is
// recomputed bottom-up, since raising alone would leave stale bounds.
func (t *Trie) add(word string, weight float64) {
	path := make([]int, 1, len(word)+1)
	cur := 0
	t.raise(cur, weight)
	for _, r := range word {
		next, ok := t.child(cur, r)
		if !ok {
			next = t.addChild(cur, r)
		}
		cur = next
		t.raise(cur, weight)
		path = append(path, cur)
	}

	n := &t.nodes[cur]
	lowered := n.isWord && weight < n.weight
	if !n.isWord {
		t.size++
	} else {
		log.Debugf("Overwriting weight of %q: %v -> %v", word, n.weight, weight)
	}
	n.isWord = true
	n.word = word
	n.weight = weight

	if lowered {
		for i := len(path) - 1; i >= 0; i-- {
			t.recompute(path[i])
		}
	}
}

func (t *Trie) raise(i int, weight float64) {
	if t.nodes[i].subtreeMax < weight {
		t.nodes[i].subtreeMax = weight
	}
}

// recompute sets the bound of i from its own word and its children's bounds.
func (t *Trie) recompute(i int) {
	n := &t.nodes[i]
	var m float64
	if n.isWord {
		m = n.weight
	}
	for _, e := range n.edges {
		m = max(m, t.nodes[e.child].subtreeMax)
	}
	n.subtreeMax = m
}

// walk follows prefix from the root and returns the node it lands on.
// Stored words are valid UTF-8, so an invalid prefix matches nothing.
func (t *Trie) walk(prefix string) (int, bool) {
	if !utf8.ValidString(prefix) {
		return 0, false
	}
	cur := 0
	for _, r := range prefix {
		next, ok := t.child(cur, r)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// frontier is a max-heap of node indices keyed by subtree bound.
type frontier struct {
	nodes []node
	items []int
}

func (f *frontier) Len() int { return len(f.items) }
func (f *frontier) Less(i, j int) bool {
	return f.nodes[f.items[i]].subtreeMax > f.nodes[f.items[j]].subtreeMax
}
func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }
func (f *frontier) Push(x any)   { f.items = append(f.items, x.(int)) }
func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	f.items = old[:n-1]
	return item
}

// bound returns the largest bound still queued.
func (f *frontier) bound() float64 { return f.nodes[f.items[0]].subtreeMax }

// TopMatches returns up to k words starting with prefix in descending
// weight order. Nodes are expanded best bound first, and the search stops
// once no queued subtree can beat the weakest of k held words.
func (t *Trie) TopMatches(prefix string, k int) ([]string, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if k == 0 {
		return []string{}, nil
	}

	start, ok := t.walk(prefix)
	if !ok {
		return []string{}, nil
	}

	results := newTopK(k)
	queue := &frontier{nodes: t.nodes, items: []int{start}}
	for queue.Len() > 0 {
		// equal bounds are still expanded so ties resolve the same way
		// as a full scan would
		if results.Full() && queue.bound() < results.Floor() {
			break
		}
		n := &t.nodes[heap.Pop(queue).(int)]
		if n.isWord {
			results.Offer(n.word, n.weight)
		}
		for _, e := range n.edges {
			if results.Full() && t.nodes[e.child].subtreeMax < results.Floor() {
				continue
			}
			heap.Push(queue, int(e.child))
		}
	}
	return results.Words(), nil
}

// TopMatch returns the heaviest word starting with prefix, or "" if none.
// It descends only into children whose bound equals the landing node's.
func (t *Trie) TopMatch(prefix string) string {
	start, ok := t.walk(prefix)
	if !ok {
		return ""
	}
	target := t.nodes[start].subtreeMax

	stack := []int{start}
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.isWord && n.weight == target {
			return n.word
		}
		// reversed so the smallest label is popped first
		for i := len(n.edges) - 1; i >= 0; i-- {
			if c := n.edges[i].child; t.nodes[c].subtreeMax >= target {
				stack = append(stack, int(c))
			}
		}
	}
	return ""
}

// WeightOf returns the weight of word, or 0 if word is absent or only a
// prefix of stored words.
func (t *Trie) WeightOf(word string) float64 {
	i, ok := t.walk(word)
	if !ok || !t.nodes[i].isWord {
		return 0
	}
	return t.nodes[i].weight
}

// Size returns the number of distinct words.
func (t *Trie) Size() int { return t.size }
