// =============================================================================
// NIBRS Flat File - Segment Envelope
// =============================================================================
//
// Every physical line of a NIBRS flat file starts with the same fixed
// envelope. This file parses that envelope and nothing else; the
// kind-specific fields are left to the segment builders.
//
// ENVELOPE LAYOUT (1-based, inclusive):
//   1-4    declared segment length
//   5      segment level (0 zero report, 1 administrative, 2 offense,
//          3 property, 4 victim, 5 offender, 6 arrestee, 7 group B arrest)
//   6      segment action type
//   7-8    month of submission
//   9-12   year of submission
//   13-16  city indicator
//   17-25  ORI
//   26-37  incident number / arrest transaction number
//
// =============================================================================

package flatfile

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// MinimumEnvelopeLength is the shortest line that carries a full envelope.
const MinimumEnvelopeLength = 37

// Segment levels.
const (
	LevelZero           byte = '0'
	LevelAdministrative byte = '1'
	LevelOffense        byte = '2'
	LevelProperty       byte = '3'
	LevelVictim         byte = '4'
	LevelOffender       byte = '5'
	LevelArrestee       byte = '6'
	LevelGroupB         byte = '7'
)

// =============================================================================
// SEGMENT STRUCTURE
// =============================================================================

// Segment is one physical line with its envelope decoded.
type Segment struct {
	// Source locates the line.
	Source nibrs.ReportSource

	// Data is the raw line without its line terminator.
	Data string

	// DeclaredLength is the value of columns 1-4, or -1 when unreadable.
	DeclaredLength int

	// Level is the hierarchy character of column 5, or 0 for a short line.
	Level byte

	ActionType    string
	MonthOfTape   string
	YearOfTape    string
	CityIndicator string
	ORI           string
	UniqueID      string
}

// Readable reports whether the envelope could be read: the line is long
// enough and its declared length is an integer. Only readable segments are
// dispatched to a builder.
func (s *Segment) Readable() bool {
	return s.DeclaredLength >= 0
}

// Length returns the actual length of the line.
func (s *Segment) Length() int {
	return len(s.Data)
}

// Field returns the trimmed text at 1-based inclusive columns [start, end].
// Columns past the end of the line read as blank.
func (s *Segment) Field(start, end int) string {
	return strings.TrimSpace(between(s.Data, start, end))
}

// RawField is Field without trimming.
func (s *Segment) RawField(start, end int) string {
	return between(s.Data, start, end)
}

// =============================================================================
// PARSING
// =============================================================================

// ParseSegment decodes the envelope of one line.
//
// PARAMETERS:
//   - source: where the line came from.
//   - data:   the line without its terminator.
//
// RETURNS:
//   - The Segment, always non-nil.
//   - Zero or more envelope errors. A length mismatch alone still leaves the
//     segment Readable.
//
// ENVELOPE CHECKS:
//  1. A line shorter than MinimumEnvelopeLength yields one error and no other
//     field is read.
//  2. Columns 1-4 must be an integer.
//  3. The declared length must equal the actual length. On mismatch the level
//     and the other envelope fields are still kept for error context.
func ParseSegment(source nibrs.ReportSource, data string) (*Segment, []nibrs.Error) {
	seg := &Segment{
		Source:         source,
		Data:           data,
		DeclaredLength: -1,
	}

	if len(data) < MinimumEnvelopeLength {
		err := nibrs.NewError(nibrs.CodeZeroMandatory, source, nibrs.DESegmentLength, strconv.Itoa(len(data)))
		return seg, []nibrs.Error{err}
	}

	seg.Level = data[4]
	seg.ActionType = seg.Field(6, 6)
	seg.MonthOfTape = seg.Field(7, 8)
	seg.YearOfTape = seg.Field(9, 12)
	seg.CityIndicator = seg.Field(13, 16)
	seg.ORI = seg.Field(17, 25)
	seg.UniqueID = seg.Field(26, 37)

	var errs []nibrs.Error

	rawLength := seg.Field(1, 4)
	declared, convErr := strconv.Atoi(rawLength)
	if convErr != nil || !isDigits(rawLength) {
		errs = append(errs, seg.newError(nibrs.CodeZeroMandatory, nibrs.DESegmentLength, seg.RawField(1, 4)))
		return seg, errs
	}
	seg.DeclaredLength = declared

	if declared != len(data) {
		errs = append(errs, seg.newError(nibrs.CodeZeroMandatory, nibrs.DESegmentLength, strconv.Itoa(len(data))))
	}

	return seg, errs
}

// newError builds an error carrying this segment's envelope context.
func (s *Segment) newError(code nibrs.ErrorCode, dataElement, value string) nibrs.Error {
	e := nibrs.NewError(code, s.Source, dataElement, value)
	e.SegmentType = s.Level
	e.ORI = s.ORI
	e.ReportID = s.UniqueID
	e.ActionType = s.ActionType
	e.MonthOfTape = s.MonthOfTape
	e.YearOfTape = s.YearOfTape
	return e
}
