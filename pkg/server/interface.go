/*
Package server implements msgpack IPC for weighted prefix queries.

The server reads a stream of msgpack encoded requests from an io.Reader
(stdin in the binary) and writes one msgpack response per request to an
io.Writer (stdout). Requests are answered synchronously, in order.

# Operations

Top-k completions, highest weight first:

	{"id": "req_001", "op": "topk", "p": "ame", "l": 3}
	{"id": "req_001", "s": [{"w": "america", "v": 812, "r": 1}, {"w": "amen", "v": 40, "r": 2}], "c": 2, "t": 14}

The single best completion:

	{"id": "req_002", "op": "top", "p": "ame"}

The weight of one word, 0 when absent:

	{"id": "req_003", "op": "weight", "p": "amen"}
	{"id": "req_003", "w": "amen", "v": 40}

Health and index statistics:

	{"id": "req_004", "op": "health"}
	{"id": "req_005", "op": "stats"}

An empty op is treated as "topk". Failed requests are answered with a
CompletionError carrying a 400 code for caller mistakes and 500 for
internal failures.
*/
package server

// Operation names accepted in Request.Op.
const (
	OpTopK   = "topk"
	OpTop    = "top"
	OpWeight = "weight"
	OpHealth = "health"
	OpStats  = "stats"
)

// Request is a single query.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op,omitempty"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Suggestion is one ranked word.
type Suggestion struct {
	Word   string  `msgpack:"w"`
	Weight float64 `msgpack:"v"`
	Rank   uint16  `msgpack:"r"`
}

// CompletionResponse answers "topk" and "top". TimeTaken is in microseconds.
type CompletionResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// WeightResponse answers "weight".
type WeightResponse struct {
	ID     string  `msgpack:"id"`
	Word   string  `msgpack:"w"`
	Weight float64 `msgpack:"v"`
}

// StatusResponse answers "health" and "stats", and is sent once on startup.
type StatusResponse struct {
	ID       string `msgpack:"id,omitempty"`
	Status   string `msgpack:"status"`
	Kind     string `msgpack:"kind,omitempty"`
	Words    int    `msgpack:"words,omitempty"`
	Requests int    `msgpack:"requests,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
