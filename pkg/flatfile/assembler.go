// =============================================================================
// NIBRS Flat File - Report Assembler
// =============================================================================
//
// The Assembler turns a stream of lines into reports. It keeps exactly one
// report open at a time:
//
//   - levels 0, 1 and 7 close the open report (handing it to the listeners)
//     and open a new one;
//   - levels 2-6 attach a child segment to the open Group A report;
//   - anything else is a structural error and leaves the state unchanged.
//
// Each report receives the errors recorded from its own line up to the line
// before the next top-level line.
//
// Reports are pushed to listeners as soon as they close, so memory stays
// proportional to one report rather than to the file.
//
// CONCURRENCY:
//   An Assembler is confined to one goroutine. Run one per file.
//
// =============================================================================

package flatfile

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithListener registers a listener. Listeners are called in registration
// order.
func WithListener(l ReportListener) Option {
	return func(a *Assembler) {
		a.listeners = append(a.listeners, l)
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// Assembler builds reports from lines. Create one with NewAssembler.
type Assembler struct {
	sourceName string
	listeners  []ReportListener
	logger     zerolog.Logger

	errors     nibrs.ErrorList
	current    nibrs.Report
	openMark   int
	spanLast   int
	lineNumber int
	finished   bool
}

// NewAssembler creates an assembler for the input labelled sourceName.
func NewAssembler(sourceName string, opts ...Option) *Assembler {
	a := &Assembler{
		sourceName: sourceName,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// =============================================================================
// LINE DISPATCH
// =============================================================================

// Accept consumes the next physical line. It never fails: every problem is
// recorded as an error and processing continues.
//
// A line whose declared length disagrees with its actual length is still
// dispatched; the builders check the actual length. A line whose envelope
// cannot be read at all (too short, or an unreadable length) is not
// dispatched, but if its level is top-level it still closes the open report
// so that the following children cannot attach to it.
func (a *Assembler) Accept(line string) {
	a.lineNumber++
	source := nibrs.ReportSource{SourceName: a.sourceName, Line: a.lineNumber}

	seg, envErrs := ParseSegment(source, line)
	topLevel := IsTopLevel(seg.Level)

	// Close the open report before any error of this line is recorded.
	if topLevel {
		a.flush()
	}
	mark := a.errors.Len()

	// Every other line read while a report is open belongs to its span,
	// including lines rejected below.
	if a.current != nil {
		a.spanLast = a.lineNumber
	}

	if len(envErrs) > 0 {
		a.logger.Debug().Int("line", a.lineNumber).Int("errors", len(envErrs)).Msg("envelope error")
		a.errors.Add(envErrs...)
	}
	if !seg.Readable() {
		return
	}

	a.logger.Trace().Int("line", a.lineNumber).Str("level", string(seg.Level)).Msg("segment")

	switch {
	case topLevel:
		report, errs := buildReport(seg)
		a.errors.Add(errs...)
		a.current = report
		a.openMark = mark
		a.spanLast = a.lineNumber
		a.finished = false

	case IsChildLevel(seg.Level):
		a.attach(seg)

	default:
		a.errors.Add(seg.newError(nibrs.CodeInvalidSegmentLevel, nibrs.DESegmentLevel, string(seg.Level)))
	}
}

// attach adds a child segment to the open Group A report.
func (a *Assembler) attach(seg *Segment) {
	report, ok := a.current.(*nibrs.GroupAReport)
	if !ok {
		// No report is open, or the open report cannot carry children.
		a.errors.Add(seg.newError(nibrs.CodeInvalidSegmentLevel, nibrs.DESegmentLevel, string(seg.Level)))
		return
	}

	switch seg.Level {
	case LevelOffense:
		o, errs := buildOffense(seg)
		a.errors.Add(errs...)
		report.Offenses = append(report.Offenses, o)
	case LevelProperty:
		p, errs := buildProperty(seg)
		a.errors.Add(errs...)
		report.Properties = append(report.Properties, p)
	case LevelVictim:
		v, errs := buildVictim(seg)
		a.errors.Add(errs...)
		report.Victims = append(report.Victims, v)
		if seg.Length() == victimLeokaLength {
			report.IncludesLeoka = true
		}
	case LevelOffender:
		o, errs := buildOffender(seg)
		a.errors.Add(errs...)
		report.Offenders = append(report.Offenders, o)
	case LevelArrestee:
		ar, errs := buildArrestee(seg)
		a.errors.Add(errs...)
		report.Arrestees = append(report.Arrestees, ar)
	}
}

// flush freezes the open report and hands it to every listener.
func (a *Assembler) flush() {
	if a.current == nil {
		return
	}
	report := a.current
	a.current = nil

	h := report.Header()
	h.Span.Last = a.spanLast
	// Errors are recorded in line order, so the ones added since the report
	// opened are exactly those of its span.
	errs := a.errors.Since(a.openMark)
	h.HasUpstreamErrors = len(errs) > 0

	a.logger.Debug().
		Str("kind", report.Kind().String()).
		Str("id", h.UniqueID).
		Int("first_line", h.Span.First).
		Int("last_line", h.Span.Last).
		Bool("has_errors", h.HasUpstreamErrors).
		Msg("report closed")

	for _, l := range a.listeners {
		l.NewReport(report, errs)
	}
}

// Finish flushes the open report. Further calls are no-ops until another
// report is opened.
func (a *Assembler) Finish() {
	if a.finished {
		return
	}
	a.finished = true
	a.flush()
}

// Discard drops the open report without notifying listeners.
func (a *Assembler) Discard() {
	a.current = nil
}

// Errors returns every error recorded so far, in input order.
func (a *Assembler) Errors() []nibrs.Error {
	return a.errors.Errors()
}

// Lines returns the number of lines consumed.
func (a *Assembler) Lines() int {
	return a.lineNumber
}

// =============================================================================
// CONVENIENCE
// =============================================================================

// Build reads every line of r and returns the complete error list.
//
// PARAMETERS:
//   - r:          the flat-file content.
//   - sourceName: label used in error locators.
//   - opts:       listeners and logger.
//
// RETURNS:
//   - All recorded errors, in input order.
//   - A read error. When one occurs the open report is discarded.
func Build(r io.Reader, sourceName string, opts ...Option) ([]nibrs.Error, error) {
	return BuildContext(context.Background(), r, sourceName, opts...)
}

// BuildContext is Build with cancellation between lines. A cancelled build
// discards the open report and returns ctx.Err().
func BuildContext(ctx context.Context, r io.Reader, sourceName string, opts ...Option) ([]nibrs.Error, error) {
	a := NewAssembler(sourceName, opts...)
	err := a.Consume(ctx, NewLineReader(r))
	return a.Errors(), err
}

// Consume feeds every line of lines to the assembler and finishes it.
//
// PARAMETERS:
//   - ctx:   checked before each line.
//   - lines: the line source. The caller still owns and closes it.
//
// RETURNS:
//   - ctx.Err() when cancelled, or the read error wrapped with the source
//     name. Either way the open report is discarded and Finish is not called.
func (a *Assembler) Consume(ctx context.Context, lines *LineReader) error {
	for lines.Next() {
		if err := ctx.Err(); err != nil {
			a.Discard()
			return err
		}
		a.Accept(lines.Line())
	}
	if err := lines.Err(); err != nil {
		a.Discard()
		return fmt.Errorf("%s: %w", a.sourceName, err)
	}

	a.Finish()
	return nil
}
