package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/autocomplete"
	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against one Autocompletor
type Server struct {
	completer    autocomplete.Autocompletor
	kind         string
	config       config.ServerConfig
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w
func NewServer(completer autocomplete.Autocompletor, kind string, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		kind:      kind,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		logger:    logger.New("server"),
	}
}

// Start signals readiness and serves requests until the reader is exhausted
func (s *Server) Start() error {
	s.logger.Debug("Starting server", "kind", s.kind, "words", s.completer.Size())

	if err := s.send(StatusResponse{Status: "ready", Kind: s.kind, Words: s.completer.Size()}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(request); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the request op. Only write failures are returned.
func (s *Server) handleRequest(request Request) error {
	s.requestCount++

	switch request.Op {
	case OpTopK, "":
		return s.handleComplete(request, false)
	case OpTop:
		return s.handleComplete(request, true)
	case OpWeight:
		return s.send(WeightResponse{
			ID:     request.ID,
			Word:   request.Prefix,
			Weight: s.completer.WeightOf(request.Prefix),
		})
	case OpHealth:
		return s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case OpStats:
		return s.send(StatusResponse{
			ID:       request.ID,
			Status:   "ok",
			Kind:     s.kind,
			Words:    s.completer.Size(),
			Requests: s.requestCount,
		})
	}
	return s.sendError(request.ID, fmt.Sprintf("unknown op: %s", request.Op), 400)
}

// handleComplete validates the prefix and limit and answers with ranked
// suggestions. A zero limit falls back to the configured default and large
// limits are capped at max_limit.
func (s *Server) handleComplete(request Request, single bool) error {
	prefix := request.Prefix
	if s.config.MaxPrefix > 0 && len(prefix) > s.config.MaxPrefix {
		s.logger.Debug("Prefix is too long in request", "id", request.ID, "len", len(prefix))
		return s.sendError(request.ID, fmt.Sprintf("prefix exceeds maximum length of %d bytes", s.config.MaxPrefix), 400)
	}

	limit := request.Limit
	if limit == 0 {
		limit = s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		limit = s.config.MaxLimit
	}

	start := time.Now()
	var words []string
	if single {
		if word := s.completer.TopMatch(prefix); word != "" {
			words = []string{word}
		}
	} else {
		var err error
		words, err = s.completer.TopMatches(prefix, limit)
		if err != nil {
			return s.sendError(request.ID, err.Error(), 400)
		}
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Word: w, Weight: s.completer.WeightOf(w), Rank: ranks[i]}
	}

	s.logger.Debug("Completed", "id", request.ID, "prefix", prefix, "count", len(suggestions), "took", elapsed)
	return s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// send encodes one response and flushes it
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("writing response: %w", err)
	}
	return s.writer.Flush()
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
