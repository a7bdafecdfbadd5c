package autocomplete

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Patricia stores weights in a compressed patricia trie and answers queries
// by visiting the whole prefix subtree. It has no pruning and serves as a
// reference for the other indexes.
type Patricia struct {
	trie *patricia.Trie
	size int
}

// NewPatricia builds a patricia-backed index. A word given more than once
// keeps its last weight.
func NewPatricia(words []string, weights []float64) (*Patricia, error) {
	terms, err := buildTerms(words, weights)
	if err != nil {
		return nil, err
	}

	p := &Patricia{trie: patricia.NewTrie()}
	for _, t := range terms {
		key := patricia.Prefix(t.Word())
		if p.trie.Insert(key, t.Weight()) {
			p.size++
			continue
		}
		p.trie.Set(key, t.Weight())
	}

	log.Debugf("Built patricia index: %d words", p.size)
	return p, nil
}

// visit calls fn for every word starting with prefix.
func (p *Patricia) visit(prefix string, fn func(word string, weight float64)) {
	visitor := func(key patricia.Prefix, item patricia.Item) error {
		weight, ok := item.(float64)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, key)
			return nil
		}
		fn(string(key), weight)
		return nil
	}

	var err error
	switch {
	case !utf8.ValidString(prefix):
		return
	case prefix == "":
		err = p.trie.Visit(visitor)
	default:
		err = p.trie.VisitSubtree(patricia.Prefix(prefix), visitor)
	}
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
}

// TopMatches returns up to k words starting with prefix in descending
// weight order.
func (p *Patricia) TopMatches(prefix string, k int) ([]string, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if k == 0 {
		return []string{}, nil
	}

	results := newTopK(k)
	p.visit(prefix, results.Offer)
	return results.Words(), nil
}

// TopMatch returns the heaviest word starting with prefix, or "" if none.
func (p *Patricia) TopMatch(prefix string) string {
	var best candidate
	found := false
	p.visit(prefix, func(word string, weight float64) {
		c := candidate{word: word, weight: weight}
		if !found || ranksBelow(best, c) {
			best, found = c, true
		}
	})
	return best.word
}

// WeightOf returns the weight of word, or 0 if it is absent.
func (p *Patricia) WeightOf(word string) float64 {
	if word == "" {
		return 0
	}
	if weight, ok := p.trie.Get(patricia.Prefix(word)).(float64); ok {
		return weight
	}
	return 0
}

// Size returns the number of distinct words.
func (p *Patricia) Size() int { return p.size }
