// Package cli handles cmd line input and prints ranked suggestions for DBG and
// testing the different indexes.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/autocomplete"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})

// InputHandler reads prefixes line by line and prints the best matches.
// Prefix length bounds, the suggestion limit and filtering are set at creation.
type InputHandler struct {
	completer       autocomplete.Autocompletor
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
	in              io.Reader
	out             *log.Logger
}

// NewInputHandler returns a handler reading stdin and printing to stderr.
func NewInputHandler(completer autocomplete.Autocompletor, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		in:              os.Stdin,
		out:             logger.New(""),
	}
}

// WithIO swaps the input and output streams.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = logger.NewWithWriter(out, "")
	return h
}

// Start runs the prompt loop until the input ends.
func (h *InputHandler) Start() error {
	h.out.Print("WordRank CLI")
	h.out.Print("type a prefix and press Enter to see the suggestions (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if prefix := strings.TrimSpace(line); prefix != "" {
			h.handleInput(prefix)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Requests returns how many prefixes were handled.
func (h *InputHandler) Requests() int { return h.requestCount }

func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	if len(prefix) < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			h.out.Errorf("Prefix filtered out: '%s'", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled")
	}

	start := time.Now()
	words, err := h.completer.TopMatches(prefix, h.suggestLimit)
	if err != nil {
		h.out.Errorf("Query failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(words) == 0 {
		h.out.Printf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(words), prefix)
	for i, word := range words {
		weight := utils.FormatWithCommas(h.completer.WeightOf(word))
		h.out.Printf("%2d. %-40s (weight: %8s)", i+1, wordStyle.Render(word), weight)
	}
}
