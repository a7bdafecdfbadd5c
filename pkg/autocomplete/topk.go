package autocomplete

import "container/heap"

// Compile time check to ensure topK satisfies the heap interface.
var _ heap.Interface = (*topK)(nil)

type candidate struct {
	word   string
	weight float64
}

// ranksBelow reports whether a loses to b. Lower weight loses; on equal
// weight the lexicographically larger word loses.
func ranksBelow(a, b candidate) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.word > b.word
}

// topK is a min-heap holding the k best candidates seen so far. The root is
// the weakest retained candidate.
type topK struct {
	k     int
	items []candidate
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]candidate, 0, min(k, 64)+1)}
}

func (h *topK) Len() int           { return len(h.items) }
func (h *topK) Less(i, j int) bool { return ranksBelow(h.items[i], h.items[j]) }
func (h *topK) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *topK) Push(x any) { h.items = append(h.items, x.(candidate)) }

func (h *topK) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Offer pushes a candidate and evicts the weakest once more than k are held.
func (h *topK) Offer(word string, weight float64) {
	heap.Push(h, candidate{word: word, weight: weight})
	if h.Len() > h.k {
		heap.Pop(h)
	}
}

// Full reports whether k candidates are held.
func (h *topK) Full() bool { return h.Len() >= h.k }

// Floor returns the weight of the weakest held candidate.
func (h *topK) Floor() float64 { return h.items[0].weight }

// Words drains the heap and returns the words best first.
func (h *topK) Words() []string {
	words := make([]string, h.Len())
	for i := len(words) - 1; i >= 0; i-- {
		words[i] = heap.Pop(h).(candidate).word
	}
	return words
}
