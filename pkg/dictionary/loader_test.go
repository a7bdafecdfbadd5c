package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestReadText(t *testing.T) {
	input := `4
# cities and words
    3.5	air
2	bat
4	bell tower

1 boy
`
	dict, err := ReadText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"air", "bat", "bell tower", "boy"}, dict.Words)
	assert.Equal(t, []float64{3.5, 2, 4, 1}, dict.Weights)
}

func TestReadTextWithoutCount(t *testing.T) {
	dict, err := ReadText(strings.NewReader("10\tten\n20\ttwenty\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, dict.Len())
	assert.Equal(t, "twenty", dict.Words[1])
}

func TestReadTextMalformed(t *testing.T) {
	testCases := []struct {
		input       string
		description string
	}{
		{"heavy\tword\n", "weight is not a number"},
		{"3\n12\n", "weight without a word"},
		{"7.5\n", "lone fractional weight"},
	}
	for _, tc := range testCases {
		_, err := ReadText(strings.NewReader(tc.input))
		assert.ErrorIs(t, err, ErrMalformed, tc.description)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	dict := New(3)
	dict.Add("air", 3)
	dict.Add("café", 0.25)
	dict.Add(strings.Repeat("x", 200), 1e9)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, dict))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, dict, got)
}

func TestReadBinaryRejectsBadInput(t *testing.T) {
	var negative bytes.Buffer
	require.NoError(t, binary.Write(&negative, binary.LittleEndian, int32(-1)))
	_, err := ReadBinary(&negative)
	assert.ErrorIs(t, err, ErrMalformed)

	var truncated bytes.Buffer
	require.NoError(t, binary.Write(&truncated, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(&truncated, binary.LittleEndian, uint16(5)))
	truncated.WriteString("ab")
	_, err = ReadBinary(&truncated)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ReadBinary(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	dict := New(2)
	dict.Add("bell", 4)
	dict.Add("boy", 1)

	for _, name := range []string{"words.bin", "words.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, dict))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, dict.Words, got.Words, name)
		assert.Equal(t, dict.Weights, got.Weights, name)
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(text, []byte("1\tone\n"), 0o644))
	format, err := DetectFileFormat(text)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	tiny := filepath.Join(dir, "tiny.bin")
	require.NoError(t, os.WriteFile(tiny, []byte{1, 0}, 0o644))
	_, err = DetectFileFormat(tiny)
	assert.Error(t, err)

	_, err = DetectFileFormat(filepath.Join(dir, "words.csv"))
	assert.Error(t, err)
}
