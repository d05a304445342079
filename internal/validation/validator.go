// =============================================================================
// NIBRS Flat File Ingest - Code Validation
// =============================================================================
//
// This module checks the coded fields of assembled reports against the code
// tables. The flat-file reader only guarantees that fields are well formed;
// whether "13X" is a real UCR offense code is decided here.
//
// VALIDATION STRATEGY:
//   Validation runs per report after assembly and visits each offense,
//   property, victim, offender and arrestee segment in file order.
//
// ERROR HANDLING:
//   - Every finding is a warning. Reports are never rejected here; the FBI
//     error numbers belong to the reader, not to this module.
//   - Each warning carries the report id, the line and the child segment id.
//   - Blank fields are not checked.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/nibrs-flatfile/internal/codetable"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// =============================================================================
// VALIDATION WARNING TYPES
// =============================================================================

// Warning describes one coded value that is not in its code table.
type Warning struct {
	// Table is the code table the value was checked against.
	Table string

	// Field is a readable name of the checked field.
	Field string

	// Value is the unknown code.
	Value string

	// Message is a human-readable description.
	Message string

	// ReportID is the incident number or arrest transaction number.
	ReportID string

	// Source locates the line holding the value.
	Source nibrs.ReportSource

	// WithinSegmentID identifies the child segment, if any.
	WithinSegmentID string
}

// Error implements the error interface.
func (w *Warning) Error() string {
	return fmt.Sprintf("[WARNING] %s line %d, report %s, field '%s': %s (value: '%s')",
		w.Source.SourceName,
		w.Source.Line,
		w.ReportID,
		w.Field,
		w.Message,
		w.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the outcome of validating a set of reports.
type Result struct {
	// Warnings contains all findings in report order.
	Warnings []*Warning

	// FieldsValidated is the number of non-blank coded fields checked.
	FieldsValidated int

	// ReportsValidated is the number of reports checked.
	ReportsValidated int
}

// WarningCount returns len(r.Warnings).
func (r *Result) WarningCount() int {
	return len(r.Warnings)
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks reports against a code table set.
type Validator struct {
	codes *codetable.Set
}

// NewValidator creates a Validator over codes.
func NewValidator(codes *codetable.Set) *Validator {
	return &Validator{codes: codes}
}

// ValidateAll validates every report.
func (v *Validator) ValidateAll(reports []nibrs.Report) *Result {
	result := &Result{
		Warnings:         make([]*Warning, 0),
		ReportsValidated: len(reports),
	}
	for _, r := range reports {
		v.validateReport(r, result)
	}
	return result
}

// ValidateReport validates one report.
func (v *Validator) ValidateReport(report nibrs.Report) []*Warning {
	result := &Result{}
	v.validateReport(report, result)
	return result.Warnings
}

// check is one field lookup bound to its location.
type check struct {
	result   *Result
	reportID string
	source   nibrs.ReportSource
	within   string
}

func (v *Validator) field(c check, table, field, value string) {
	if value == "" {
		return
	}
	c.result.FieldsValidated++

	t := v.codes.Table(table)
	if t == nil || t.Contains(value) {
		return
	}
	c.result.Warnings = append(c.result.Warnings, &Warning{
		Table:           table,
		Field:           field,
		Value:           value,
		Message:         fmt.Sprintf("code not found in %s table", strings.ReplaceAll(table, "_", " ")),
		ReportID:        c.reportID,
		Source:          c.source,
		WithinSegmentID: c.within,
	})
}

func (v *Validator) validateReport(report nibrs.Report, result *Result) {
	h := report.Header()
	base := check{result: result, reportID: h.UniqueID, source: h.Source}

	switch r := report.(type) {
	case *nibrs.ZeroReport:
		// Nothing coded.
	case *nibrs.GroupBArrestReport:
		if r.Arrestee != nil {
			v.validateArrestee(base, r.Arrestee)
		}
	case *nibrs.GroupAReport:
		for _, o := range r.Offenses {
			c := base
			c.source, c.within = o.Source, o.UCROffenseCode
			v.field(c, codetable.UCROffense, "UCR Offense Code", o.UCROffenseCode)
			v.field(c, codetable.AttemptCompleted, "Offense Attempted/Completed", o.AttemptedCompleted)
			for _, bias := range o.BiasMotivations.All() {
				v.field(c, codetable.BiasMotivation, "Bias Motivation", bias)
			}
		}
		for _, p := range r.Properties {
			c := base
			c.source, c.within = p.Source, p.TypeOfLoss
			v.field(c, codetable.PropertyLoss, "Type Of Property Loss", p.TypeOfLoss)
		}
		for _, victim := range r.Victims {
			c := base
			c.source = victim.Source
			if n, ok := victim.SequenceNumber.Get(); ok {
				c.within = fmt.Sprintf("%03d", n)
			}
			v.field(c, codetable.VictimType, "Type Of Victim", victim.VictimType)
			for _, ucr := range victim.OffenseConnections.All() {
				v.field(c, codetable.UCROffense, "Victim Connected To UCR Offense Code", ucr)
			}
			v.field(c, codetable.Sex, "Sex Of Victim", victim.Sex)
			v.field(c, codetable.Race, "Race Of Victim", victim.Race)
			v.field(c, codetable.Ethnicity, "Ethnicity Of Victim", victim.Ethnicity)
			v.field(c, codetable.ResidentStatus, "Resident Status Of Victim", victim.ResidentStatus)
		}
		for _, o := range r.Offenders {
			c := base
			c.source = o.Source
			if n, ok := o.SequenceNumber.Get(); ok {
				c.within = fmt.Sprintf("%02d", n)
			}
			v.field(c, codetable.Sex, "Sex Of Offender", o.Sex)
			v.field(c, codetable.Race, "Race Of Offender", o.Race)
			v.field(c, codetable.Ethnicity, "Ethnicity Of Offender", o.Ethnicity)
		}
		for _, a := range r.Arrestees {
			v.validateArrestee(base, a)
		}
	}
}

func (v *Validator) validateArrestee(base check, a *nibrs.Arrestee) {
	c := base
	c.source = a.Source
	if n, ok := a.SequenceNumber.Get(); ok {
		c.within = fmt.Sprintf("%02d", n)
	}
	v.field(c, codetable.UCROffense, "UCR Arrest Offense Code", a.UCROffenseCode)
	v.field(c, codetable.ArrestType, "Type Of Arrest", a.TypeOfArrest)
	v.field(c, codetable.Sex, "Sex Of Arrestee", a.Sex)
	v.field(c, codetable.Race, "Race Of Arrestee", a.Race)
	v.field(c, codetable.Ethnicity, "Ethnicity Of Arrestee", a.Ethnicity)
	v.field(c, codetable.ResidentStatus, "Resident Status Of Arrestee", a.ResidentStatus)
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatWarnings formats warnings for display or logging.
func FormatWarnings(warnings []*Warning) string {
	if len(warnings) == 0 {
		return "No validation warnings."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d warning(s):\n\n", len(warnings)))

	for i, w := range warnings {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, w.Error()))
	}

	return builder.String()
}
