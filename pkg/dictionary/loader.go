// Package dictionary reads and writes the parallel word and weight lists an
// autocompleter is built from.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// MaxEntries caps the entry count accepted from a binary header.
const MaxEntries = 50_000_000

// ErrMalformed is returned when a word list cannot be parsed.
var ErrMalformed = errors.New("malformed dictionary")

// wordBufferPool is a pool of byte slices for reading binary records
var wordBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// Dictionary is a pair of parallel word and weight lists in file order.
type Dictionary struct {
	Words   []string
	Weights []float64
}

// New returns an empty dictionary with room for n entries.
func New(n int) *Dictionary {
	return &Dictionary{
		Words:   make([]string, 0, n),
		Weights: make([]float64, 0, n),
	}
}

// Add appends one entry.
func (d *Dictionary) Add(word string, weight float64) {
	d.Words = append(d.Words, word)
	d.Weights = append(d.Weights, weight)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.Words) }

// Load reads a dictionary file, choosing the reader from its extension.
func Load(filename string) (*Dictionary, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %s: %w", filename, err)
	}
	defer file.Close()

	var dict *Dictionary
	switch format {
	case FormatBinary:
		dict, err = ReadBinary(bufio.NewReader(file))
	default:
		dict, err = ReadText(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	log.Debugf("Loaded %d entries from %s dictionary: %s", dict.Len(), format, filename)
	return dict, nil
}

// Save writes a dictionary file, choosing the writer from its extension.
func Save(filename string, dict *Dictionary) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create dictionary file %s: %w", filename, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if strings.HasSuffix(strings.ToLower(filename), ".bin") {
		err = WriteBinary(writer, dict)
	} else {
		err = WriteText(writer, dict)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return writer.Flush()
}

// ReadText parses lines of the form "weight<TAB>word". A word may contain
// spaces. When there is no tab the first whitespace separated field is the
// weight. Blank lines and lines starting with '#' are skipped, and a first
// line holding a single integer is treated as an entry count.
func ReadText(r io.Reader) (*Dictionary, error) {
	dict := New(0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	sawEntry := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawEntry {
			sawEntry = true
			if n, err := strconv.Atoi(line); err == nil {
				if n > 0 && n <= MaxEntries {
					dict = New(n)
				}
				continue
			}
		}

		weightField, word, ok := strings.Cut(line, "\t")
		if !ok {
			weightField, word, ok = strings.Cut(line, " ")
		}
		word = strings.TrimSpace(word)
		if !ok || word == "" {
			return nil, fmt.Errorf("%w: line %d: expected weight and word, got %q", ErrMalformed, lineNum, line)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(weightField), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad weight %q: %v", ErrMalformed, lineNum, weightField, err)
		}
		dict.Add(word, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text dictionary: %w", err)
	}
	return dict, nil
}

// WriteText writes one "weight<TAB>word" line per entry after a count line.
func WriteText(w io.Writer, dict *Dictionary) error {
	if _, err := fmt.Fprintln(w, dict.Len()); err != nil {
		return err
	}
	for i, word := range dict.Words {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", strconv.FormatFloat(dict.Weights[i], 'f', -1, 64), word); err != nil {
			return err
		}
	}
	return nil
}

func checkCount(count int32) error {
	if count < 0 {
		return fmt.Errorf("%w: invalid word count %d (negative)", ErrMalformed, count)
	}
	if count > MaxEntries {
		return fmt.Errorf("%w: suspicious word count %d (too large)", ErrMalformed, count)
	}
	return nil
}

// ReadBinary parses the binary word list format:
// 4 bytes count header + (2 bytes length + word + 8 bytes float64 weight) repeated,
// all little endian.
func ReadBinary(r io.Reader) (*Dictionary, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading entry count: %v", ErrMalformed, err)
	}
	if err := checkCount(count); err != nil {
		return nil, err
	}

	dict := New(int(count))
	for i := 0; i < int(count); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("%w: entry %d: reading word length: %v", ErrMalformed, i, err)
		}

		bufPtr := wordBufferPool.Get().(*[]byte)
		buffer := *bufPtr
		var wordBytes []byte
		if cap(buffer) >= int(wordLen) {
			wordBytes = buffer[:wordLen]
		} else {
			wordBytes = make([]byte, wordLen)
		}
		_, err := io.ReadFull(r, wordBytes)
		word := string(wordBytes)
		wordBufferPool.Put(bufPtr)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: reading word bytes: %v", ErrMalformed, i, err)
		}

		var bits uint64
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return nil, fmt.Errorf("%w: entry %d: reading weight for %q: %v", ErrMalformed, i, word, err)
		}
		dict.Add(word, math.Float64frombits(bits))
	}
	return dict, nil
}

// WriteBinary writes dict in the format read by ReadBinary.
func WriteBinary(w io.Writer, dict *Dictionary) error {
	if dict.Len() > MaxEntries {
		return fmt.Errorf("%w: %d entries exceeds %d", ErrMalformed, dict.Len(), MaxEntries)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(dict.Len())); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, word := range dict.Words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("%w: word %d is %d bytes long", ErrMalformed, i, len(word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("writing word length: %w", err)
		}
		if _, err := io.WriteString(w, word); err != nil {
			return fmt.Errorf("writing word %s: %w", word, err)
		}
		if err := binary.Write(w, binary.LittleEndian, math.Float64bits(dict.Weights[i])); err != nil {
			return fmt.Errorf("writing weight for word %s: %w", word, err)
		}
	}
	return nil
}
