// =============================================================================
// NIBRS Flat File - Reports
// =============================================================================
//
// A Report is the hierarchical record assembled from one top-level line and
// the child lines that follow it. There are exactly three kinds:
//
//   ZeroReport         : level 0, an agency reporting no incidents for a month
//   GroupAReport       : level 1, an incident with offense/property/victim/
//                        offender/arrestee children (levels 2-6)
//   GroupBArrestReport : level 7, a single Group B arrest
//
// The set is closed. Consumers switch on the concrete type; the unexported
// marker method keeps other packages from adding variants.
//
// =============================================================================

package nibrs

import "time"

// =============================================================================
// REPORT KIND
// =============================================================================

// ReportKind identifies the variant of a Report.
type ReportKind int

const (
	KindZero ReportKind = iota
	KindGroupA
	KindGroupB
)

func (k ReportKind) String() string {
	switch k {
	case KindZero:
		return "ZeroReport"
	case KindGroupA:
		return "GroupAReport"
	case KindGroupB:
		return "GroupBArrestReport"
	default:
		return "Unknown"
	}
}

// Report is implemented by *ZeroReport, *GroupAReport and *GroupBArrestReport.
type Report interface {
	Kind() ReportKind
	Header() *ReportHeader
	isReport()
}

// =============================================================================
// COMMON HEADER
// =============================================================================

// ReportSource locates a line in its input.
type ReportSource struct {
	// SourceName is the file name or other label supplied by the caller.
	SourceName string

	// Line is the 1-based physical line number.
	Line int
}

// Span is the inclusive range of input lines that contributed to a report.
type Span struct {
	First int
	Last  int
}

// Contains reports whether line falls within the span.
func (s Span) Contains(line int) bool {
	return line >= s.First && line <= s.Last
}

// ReportHeader holds the attributes shared by every report kind.
type ReportHeader struct {
	ORI           string
	UniqueID      string
	ActionType    string
	CityIndicator string
	MonthOfTape   Parsed[int]
	YearOfTape    Parsed[int]

	// HasUpstreamErrors is set when any error was recorded for a line in Span.
	HasUpstreamErrors bool

	// Source is the top-level line that opened the report.
	Source ReportSource

	// Span covers the opening line up to the line before the next report.
	Span Span
}

// =============================================================================
// REPORT VARIANTS
// =============================================================================

// ZeroReport is an agency's statement that it has no incidents for a month.
type ZeroReport struct {
	ReportHeader

	IncidentNumber string
	ReportMonth    Parsed[int]
	ReportYear     Parsed[int]
}

func (r *ZeroReport) Kind() ReportKind      { return KindZero }
func (r *ZeroReport) Header() *ReportHeader { return &r.ReportHeader }
func (r *ZeroReport) isReport()             {}

// GroupAReport is an incident with its child segments.
type GroupAReport struct {
	ReportHeader

	IncidentNumber           string
	IncidentDate             Parsed[time.Time]
	ReportDateIndicator      string
	IncidentHour             Parsed[int]
	ExceptionalClearance     string
	ExceptionalClearanceDate Parsed[time.Time]
	CargoTheft               string
	IncludesCargoTheft       bool
	IncludesLeoka            bool

	Offenses   []*Offense
	Properties []*Property
	Victims    []*Victim
	Offenders  []*Offender
	Arrestees  []*Arrestee
}

func (r *GroupAReport) Kind() ReportKind      { return KindGroupA }
func (r *GroupAReport) Header() *ReportHeader { return &r.ReportHeader }
func (r *GroupAReport) isReport()             {}

// SegmentCount returns the number of attached child segments.
func (r *GroupAReport) SegmentCount() int {
	return len(r.Offenses) + len(r.Properties) + len(r.Victims) + len(r.Offenders) + len(r.Arrestees)
}

// GroupBArrestReport is a Group B arrest. Its unique id is the arrest
// transaction number.
type GroupBArrestReport struct {
	ReportHeader

	Arrestee *Arrestee
}

func (r *GroupBArrestReport) Kind() ReportKind      { return KindGroupB }
func (r *GroupBArrestReport) Header() *ReportHeader { return &r.ReportHeader }
func (r *GroupBArrestReport) isReport()             {}
