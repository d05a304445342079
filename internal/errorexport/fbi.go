// =============================================================================
// NIBRS Flat File Ingest - FBI Error Report
// =============================================================================
//
// This module writes collected errors in the fixed-width layout the FBI uses
// for its returned error files, so agencies can feed the report into the same
// tooling they use for FBI feedback.
//
// LINE LAYOUT (1-based, inclusive):
//
//   | Columns | Content                                         |
//   |---------|-------------------------------------------------|
//   | 1-4     | Year of tape                                    |
//   | 5-6     | Month of tape, zero padded                      |
//   | 7-13    | Line number in the submission, zero padded      |
//   | 14      | Action type                                     |
//   | 15-23   | ORI                                             |
//   | 24-35   | Incident number / arrest transaction number     |
//   | 36      | Segment level                                   |
//   | 37-39   | Offense UCR code (level 2)                      |
//   | 40-42   | Victim/offender/arrestee sequence (4, 5, 6, 7)  |
//   | 43      | Property loss type (level 3)                    |
//   | 44-46   | Data element                                    |
//   | 47-49   | Error number                                    |
//   | 50-61   | Offending value                                 |
//   | 62-140  | Error message                                   |
//
// Every line is LineLength characters. Values longer than their column are
// truncated. The report ends with a trailer line carrying the ORI 999999999.
//
// =============================================================================

package errorexport

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// LineLength is the width of every FBI error report line.
const LineLength = 146

// DefaultProducer names the system in the trailer line.
const DefaultProducer = "nibrs-flatfile"

// trailerORI marks the trailer line.
const trailerORI = "999999999"

// column is a 1-based inclusive column range.
type column struct {
	first int
	last  int
}

func (c column) width() int { return c.last - c.first + 1 }

var (
	colYear         = column{1, 4}
	colMonth        = column{5, 6}
	colLine         = column{7, 13}
	colAction       = column{14, 14}
	colORI          = column{15, 23}
	colReportID     = column{24, 35}
	colSegment      = column{36, 36}
	colOffenseID    = column{37, 39}
	colPersonID     = column{40, 42}
	colPropertyID   = column{43, 43}
	colDataElement  = column{44, 46}
	colCode         = column{47, 49}
	colValue        = column{50, 61}
	colMessage      = column{62, 140}
	colTrailerTitle = column{62, 146}
)

// =============================================================================
// WRITER
// =============================================================================

// FBIWriter renders errors as an FBI-format error report.
type FBIWriter struct {
	// Producer is written to the trailer line. Empty uses DefaultProducer.
	Producer string

	// Now supplies the trailer date. Nil uses time.Now.
	Now func() time.Time
}

// NewFBIWriter returns a writer with default settings.
func NewFBIWriter() *FBIWriter {
	return &FBIWriter{Producer: DefaultProducer, Now: time.Now}
}

// Write renders every error followed by the trailer line.
//
// PARAMETERS:
//   - w: The destination.
//   - errs: The errors in file order.
//
// RETURNS:
//   - An error if writing fails.
func (fw *FBIWriter) Write(w io.Writer, errs []nibrs.Error) error {
	bw := bufio.NewWriter(w)
	for _, e := range errs {
		if _, err := bw.WriteString(FormatLine(e)); err != nil {
			return fmt.Errorf("failed to write error line: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write error line: %w", err)
		}
	}
	if _, err := bw.WriteString(fw.trailer()); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return bw.Flush()
}

func (fw *FBIWriter) trailer() string {
	producer := fw.Producer
	if producer == "" {
		producer = DefaultProducer
	}
	now := time.Now
	if fw.Now != nil {
		now = fw.Now
	}

	line := blankLine()
	put(line, colORI, trailerORI)
	put(line, colTrailerTitle, fmt.Sprintf("%s processed submission on %s", producer, now().Format("01/02/06")))
	return string(line)
}

// =============================================================================
// LINE FORMATTING
// =============================================================================

// FormatLine renders one error as a LineLength-wide line without the newline.
func FormatLine(e nibrs.Error) string {
	line := blankLine()

	put(line, colYear, e.YearOfTape)
	put(line, colMonth, padLeft(e.MonthOfTape, colMonth.width(), '0'))
	put(line, colLine, padLeft(strconv.Itoa(e.Source.Line), colLine.width(), '0'))
	put(line, colAction, e.ActionType)
	put(line, colORI, e.ORI)
	put(line, colReportID, e.ReportID)
	if e.SegmentType != 0 {
		put(line, colSegment, string(e.SegmentType))
	}

	switch e.SegmentType {
	case '2':
		put(line, colOffenseID, e.WithinSegmentID)
	case '3':
		put(line, colPropertyID, e.WithinSegmentID)
	case '4', '5', '6', '7':
		if e.WithinSegmentID != "" {
			put(line, colPersonID, padLeft(e.WithinSegmentID, colPersonID.width(), '0'))
		}
	}

	put(line, colDataElement, dataElementColumn(e.DataElement))
	put(line, colCode, string(e.Code))
	put(line, colValue, e.Value)
	put(line, colMessage, e.Description)

	return string(line)
}

// dataElementColumn left-pads single-digit identifiers ("3" -> "03").
// Structural names that do not fit the column are left blank.
func dataElementColumn(de string) string {
	if len(de) > colDataElement.width() {
		return ""
	}
	if len(de) == 1 && de[0] >= '0' && de[0] <= '9' {
		return "0" + de
	}
	return de
}

func blankLine() []byte {
	return []byte(strings.Repeat(" ", LineLength))
}

// put copies v into the column, truncating it to the column width.
func put(line []byte, c column, v string) {
	if len(v) > c.width() {
		v = v[:c.width()]
	}
	copy(line[c.first-1:c.last], v)
}

// padLeft pads s with padChar on the left to reach length.
func padLeft(s string, length int, padChar byte) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(string(padChar), length-len(s)) + s
}
