package flatfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderStripsCarriageReturn(t *testing.T) {
	r := NewLineReader(strings.NewReader("first\r\nsecond\nthird"))

	var lines []string
	for r.Next() {
		lines = append(lines, r.Line())
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Equal(t, 3, r.LineNumber())
	assert.NoError(t, r.Close())
}

func TestOpenLineReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.txt")
	require.NoError(t, os.WriteFile(path, []byte(adminLine().String()+"\n"), 0644))

	r, err := OpenLineReader(path)
	require.NoError(t, err)
	defer r.Close()

	require.True(t, r.Next())
	assert.Len(t, r.Line(), 87)
	assert.False(t, r.Next())
}

func TestOpenLineReaderMissingFile(t *testing.T) {
	_, err := OpenLineReader(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
