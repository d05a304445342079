package flatfile

import (
	"bytes"
	"fmt"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

const (
	testORI      = "WA0000000"
	testUniqueID = "INC000000001"
)

// lineBuilder composes a fixed-width test line with a valid envelope.
type lineBuilder struct {
	b []byte
}

// newLine returns a blank line of exactly length characters whose envelope
// declares that length and the given level.
func newLine(level byte, length int) *lineBuilder {
	l := &lineBuilder{b: bytes.Repeat([]byte(" "), length)}
	l.set(1, fmt.Sprintf("%04d", length))
	l.b[4] = level
	l.set(6, "I")
	l.set(7, "05")
	l.set(9, "2023")
	l.set(17, testORI)
	l.set(26, testUniqueID)
	return l
}

// set writes v starting at 1-based column col.
func (l *lineBuilder) set(col int, v string) *lineBuilder {
	copy(l.b[col-1:], v)
	return l
}

func (l *lineBuilder) String() string {
	return string(l.b)
}

// segment parses the built line as line 1 of "test.txt" and panics on an
// envelope error, which would mean the test line itself is wrong.
func (l *lineBuilder) segment() *Segment {
	seg, errs := ParseSegment(nibrs.ReportSource{SourceName: "test.txt", Line: 1}, l.String())
	if len(errs) > 0 {
		panic(errs[0].Error())
	}
	return seg
}

func adminLine() *lineBuilder {
	return newLine(LevelAdministrative, 87).set(38, "20230514").set(47, "13").set(49, "N")
}

func offenseLine() *lineBuilder {
	return newLine(LevelOffense, 71).set(38, "13A").set(41, "C").set(45, "20")
}

func codes(errs []nibrs.Error) []nibrs.ErrorCode {
	out := make([]nibrs.ErrorCode, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}
