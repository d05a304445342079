package flatfile

import (
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// ReportListener receives each finished report exactly once, in input order.
// errs holds the errors recorded for lines in the report's span.
type ReportListener interface {
	NewReport(report nibrs.Report, errs []nibrs.Error)
}

// ReportListenerFunc adapts a function to ReportListener.
type ReportListenerFunc func(report nibrs.Report, errs []nibrs.Error)

// NewReport calls f.
func (f ReportListenerFunc) NewReport(report nibrs.Report, errs []nibrs.Error) {
	f(report, errs)
}

// =============================================================================
// COLLECTOR
// =============================================================================

// Collector keeps every report it is handed. It trades the assembler's
// bounded memory for random access, so use it for files that fit in memory.
type Collector struct {
	reports []nibrs.Report
	errs    map[nibrs.Report][]nibrs.Error
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{errs: make(map[nibrs.Report][]nibrs.Error)}
}

// NewReport implements ReportListener.
func (c *Collector) NewReport(report nibrs.Report, errs []nibrs.Error) {
	c.reports = append(c.reports, report)
	if len(errs) > 0 {
		c.errs[report] = errs
	}
}

// Len returns the number of collected reports.
func (c *Collector) Len() int {
	return len(c.reports)
}

// Reports returns the collected reports in input order.
func (c *Collector) Reports() []nibrs.Report {
	out := make([]nibrs.Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// ErrorsFor returns the errors attributed to report.
func (c *Collector) ErrorsFor(report nibrs.Report) []nibrs.Error {
	return c.errs[report]
}

// GroupAReports returns the collected Group A reports in input order.
func (c *Collector) GroupAReports() []*nibrs.GroupAReport {
	var out []*nibrs.GroupAReport
	for _, r := range c.reports {
		if g, ok := r.(*nibrs.GroupAReport); ok {
			out = append(out, g)
		}
	}
	return out
}

// ZeroReports returns the collected zero reports in input order.
func (c *Collector) ZeroReports() []*nibrs.ZeroReport {
	var out []*nibrs.ZeroReport
	for _, r := range c.reports {
		if z, ok := r.(*nibrs.ZeroReport); ok {
			out = append(out, z)
		}
	}
	return out
}

// GroupBReports returns the collected Group B arrest reports in input order.
func (c *Collector) GroupBReports() []*nibrs.GroupBArrestReport {
	var out []*nibrs.GroupBArrestReport
	for _, r := range c.reports {
		if b, ok := r.(*nibrs.GroupBArrestReport); ok {
			out = append(out, b)
		}
	}
	return out
}

// =============================================================================
// LOG LISTENER
// =============================================================================

// NewLogListener returns a listener that writes one debug event per report.
func NewLogListener(logger zerolog.Logger) ReportListener {
	return ReportListenerFunc(func(report nibrs.Report, errs []nibrs.Error) {
		h := report.Header()
		event := logger.Debug().
			Str("kind", report.Kind().String()).
			Str("ori", h.ORI).
			Str("id", h.UniqueID).
			Int("first_line", h.Span.First).
			Int("last_line", h.Span.Last).
			Int("errors", len(errs))
		if g, ok := report.(*nibrs.GroupAReport); ok {
			event = event.Int("segments", g.SegmentCount())
		}
		event.Msg("report assembled")
	})
}
