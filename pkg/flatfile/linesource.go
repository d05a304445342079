package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single physical line. Legal segments are at most 307
// characters; the headroom lets oversized lines surface as length errors
// instead of scanner failures.
const maxLineSize = 1024 * 1024

// LineReader yields the physical lines of a flat file one at a time, without
// holding the file in memory.
//
// USAGE:
//
//	lines, err := flatfile.OpenLineReader(path)
//	if err != nil {
//	    return err
//	}
//	defer lines.Close()
//
//	for lines.Next() {
//	    assembler.Accept(lines.Line())
//	}
//
//	if err := lines.Err(); err != nil {
//	    return err
//	}
type LineReader struct {
	closer     io.Closer
	scanner    *bufio.Scanner
	line       string
	lineNumber int
	err        error
}

// NewLineReader wraps r. The caller keeps ownership of r.
func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{scanner: scanner}
}

// OpenLineReader opens the file at path. Close releases it.
func OpenLineReader(path string) (*LineReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	lr := NewLineReader(file)
	lr.closer = file
	return lr, nil
}

// Next advances to the next line. Returns false at EOF or on error.
func (l *LineReader) Next() bool {
	if l.err != nil {
		return false
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			l.err = fmt.Errorf("error reading line %d: %w", l.lineNumber+1, err)
		}
		return false
	}
	l.lineNumber++
	l.line = strings.TrimSuffix(l.scanner.Text(), "\r")
	return true
}

// Line returns the current line without its terminator.
func (l *LineReader) Line() string {
	return l.line
}

// LineNumber returns the 1-based number of the current line.
func (l *LineReader) LineNumber() int {
	return l.lineNumber
}

// Err returns the first read error, if any.
func (l *LineReader) Err() error {
	return l.err
}

// Close closes the underlying file when the reader owns one.
func (l *LineReader) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
