// =============================================================================
// NIBRS Flat File - Error Model
// =============================================================================
//
// Every problem found while reading a flat file becomes an Error value. Errors
// are collected, never thrown: a malformed field is left unset, the error is
// appended to an ErrorList, and processing continues with the next field.
//
// ERROR CODES:
//   Codes and data-element identifiers follow the FBI NIBRS technical
//   specification numbering. They are written verbatim to the FBI error
//   report, so they must not be renamed.
//
// =============================================================================

package nibrs

import (
	"fmt"
	"strings"
)

// =============================================================================
// ERROR VALUE
// =============================================================================

// ErrorCode is a three-digit FBI error number such as "051" or "404".
type ErrorCode string

// Error describes one problem in one line of a flat file.
type Error struct {
	// Code is the FBI error number.
	Code ErrorCode

	// Description is the text associated with Code.
	Description string

	// Source locates the offending line.
	Source ReportSource

	// SegmentType is the hierarchy level character of the line ('0'..'7'),
	// or zero when the line was too short to carry one.
	SegmentType byte

	// DataElement is the FBI data-element identifier ("3", "26", "2A") or a
	// structural name such as "Segment Length".
	DataElement string

	// Value is the offending raw value.
	Value string

	// WithinSegmentID identifies the child segment inside its report
	// (offense UCR code, victim/offender/arrestee sequence, property loss type).
	WithinSegmentID string

	// Envelope context copied from the offending line, used by exporters.
	ORI         string
	ReportID    string
	ActionType  string
	MonthOfTape string
	YearOfTape  string
}

// NewError builds an Error whose Description comes from the code table.
func NewError(code ErrorCode, source ReportSource, dataElement, value string) Error {
	return Error{
		Code:        code,
		Description: Describe(code),
		Source:      source,
		DataElement: dataElement,
		Value:       value,
	}
}

// Error implements the error interface.
func (e Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s line %d: [%s] %s", e.Source.SourceName, e.Source.Line, e.Code, e.Description)
	if e.DataElement != "" {
		fmt.Fprintf(&b, " (data element %s", e.DataElement)
		if e.Value != "" {
			fmt.Fprintf(&b, ", value %q", e.Value)
		}
		b.WriteString(")")
	}
	return b.String()
}

// =============================================================================
// ERROR SINK
// =============================================================================

// ErrorList is an ordered, append-only collection of errors.
//
// The zero value is ready to use. An ErrorList is owned by a single assembler
// and is not safe for concurrent use.
type ErrorList struct {
	errs []Error
}

// Add appends errors in order.
func (l *ErrorList) Add(errs ...Error) {
	l.errs = append(l.errs, errs...)
}

// Len returns the number of recorded errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Errors returns a copy of every recorded error.
func (l *ErrorList) Errors() []Error {
	return l.Since(0)
}

// Since returns a copy of the errors recorded at or after index n.
func (l *ErrorList) Since(n int) []Error {
	if n < 0 {
		n = 0
	}
	if n >= len(l.errs) {
		return []Error{}
	}
	out := make([]Error, len(l.errs)-n)
	copy(out, l.errs[n:])
	return out
}
