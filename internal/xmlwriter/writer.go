// =============================================================================
// NIBRS Flat File Ingest - Summary XML Writer
// =============================================================================
//
// This module writes a per-file ingest summary as XML: one element per
// assembled report with its location in the file, its error count and the
// coded offense data translated through the code tables. It is a review
// document, not a NIEM submission.
//
// XML STRUCTURE:
//
//   <nibrsIngest source="agency.txt" runId="...">
//     <totals lines="12" reports="3" errors="1" warnings="0"/>
//     <report n="1" kind="GroupAReport" ori="WA0000000" id="INC000000001"
//             firstLine="1" lastLine="9" errors="1" upstreamErrors="true">
//       <incidentDate>2023-05-01</incidentDate>
//       <segments offenses="1" properties="1" victims="1" offenders="1" arrestees="0"/>
//       <offense ucr="13A" completed="C">
//         <label>Aggravated Assault</label>
//         <bias code="88">None (no bias)</bias>
//       </offense>
//     </report>
//     <report n="2" kind="ZeroReport" .../>
//   </nibrsIngest>
//
// Report numbering is global across the file and starts at 1.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ginjaninja78/nibrs-flatfile/internal/codetable"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement is the name of the document element.
	// Default: "nibrsIngest"
	RootElement string

	// RootAttributes are additional attributes for the root element, written
	// in key order after source and runId.
	RootAttributes map[string]string

	// IncludeLabels adds code-table labels for offense and bias codes.
	// Default: true
	IncludeLabels bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootElement:           "nibrsIngest",
		RootAttributes:        make(map[string]string),
		IncludeLabels:         true,
	}
}

// =============================================================================
// SUMMARY INPUT
// =============================================================================

// Summary is everything the writer needs about one ingested file.
type Summary struct {
	SourceName string
	RunID      string
	Lines      int
	Warnings   int

	// Reports are the assembled reports in file order.
	Reports []nibrs.Report

	// Errors are every error of the file in order, including those not
	// attributed to a report.
	Errors []nibrs.Error

	// ErrorsFor returns the errors attributed to one report. Nil counts
	// the errors of Errors that fall in the report's span.
	ErrorsFor func(nibrs.Report) []nibrs.Error
}

func (s *Summary) errorCount(r nibrs.Report) int {
	if s.ErrorsFor != nil {
		return len(s.ErrorsFor(r))
	}
	span := r.Header().Span
	n := 0
	for _, e := range s.Errors {
		if span.Contains(e.Source.Line) {
			n++
		}
	}
	return n
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates the summary document with the default options.
//
// PARAMETERS:
//   - summary: The ingested file.
//   - codes: The code tables used for labels. Nil uses codetable.Default().
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(summary *Summary, codes *codetable.Set) ([]byte, error) {
	return GenerateWithOptions(summary, codes, DefaultGenerateOptions())
}

// GenerateWithOptions creates the summary document with custom options.
func GenerateWithOptions(summary *Summary, codes *codetable.Set, options GenerateOptions) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("summary is nil")
	}
	if codes == nil {
		codes = codetable.Default()
	}
	if options.RootElement == "" {
		options.RootElement = "nibrsIngest"
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	doc := buildDocument(summary, codes, options)

	xmlBytes, err := marshalWithIndent(doc, options.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}

	buffer.Write(xmlBytes)

	return buffer.Bytes(), nil
}

// Write generates the summary and writes it to w.
func Write(w io.Writer, summary *Summary, codes *codetable.Set) error {
	data, err := Generate(summary, codes)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write summary XML: %w", err)
	}
	return nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLDocument represents the root of the XML document.
type XMLDocument struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Children   []XMLElement
}

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr   `xml:",attr"`
	Value      string       `xml:",chardata"`
	Children   []XMLElement `xml:",any"`
}

func buildDocument(summary *Summary, codes *codetable.Set, options GenerateOptions) *XMLDocument {
	doc := &XMLDocument{
		XMLName: xml.Name{Local: options.RootElement},
		Attributes: []xml.Attr{
			attr("source", summary.SourceName),
		},
	}
	if summary.RunID != "" {
		doc.Attributes = append(doc.Attributes, attr("runId", summary.RunID))
	}

	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		doc.Attributes = append(doc.Attributes, attr(key, options.RootAttributes[key]))
	}

	doc.Children = append(doc.Children, XMLElement{
		XMLName: xml.Name{Local: "totals"},
		Attributes: []xml.Attr{
			attr("lines", strconv.Itoa(summary.Lines)),
			attr("reports", strconv.Itoa(len(summary.Reports))),
			attr("errors", strconv.Itoa(len(summary.Errors))),
			attr("warnings", strconv.Itoa(summary.Warnings)),
		},
	})

	for i, r := range summary.Reports {
		doc.Children = append(doc.Children, buildReportElement(i+1, r, summary.errorCount(r), codes, options))
	}

	return doc
}

// buildReportElement constructs one report element.
//
// STRUCTURE:
//   <report n="1" kind="..." ori="..." id="..." firstLine="1" lastLine="9" errors="0">
//     ...variant-specific children...
//   </report>
func buildReportElement(n int, report nibrs.Report, errorCount int, codes *codetable.Set, options GenerateOptions) XMLElement {
	h := report.Header()
	element := XMLElement{
		XMLName: xml.Name{Local: "report"},
		Attributes: []xml.Attr{
			attr("n", strconv.Itoa(n)),
			attr("kind", report.Kind().String()),
			attr("ori", h.ORI),
			attr("id", h.UniqueID),
			attr("action", h.ActionType),
			attr("firstLine", strconv.Itoa(h.Span.First)),
			attr("lastLine", strconv.Itoa(h.Span.Last)),
			attr("errors", strconv.Itoa(errorCount)),
		},
	}
	if h.HasUpstreamErrors {
		element.Attributes = append(element.Attributes, attr("upstreamErrors", "true"))
	}

	switch r := report.(type) {
	case *nibrs.ZeroReport:
		if m, ok := r.ReportMonth.Get(); ok {
			element.Children = append(element.Children, createSimpleElement("reportMonth", fmt.Sprintf("%02d", m)))
		}
		if y, ok := r.ReportYear.Get(); ok {
			element.Children = append(element.Children, createSimpleElement("reportYear", strconv.Itoa(y)))
		}
	case *nibrs.GroupAReport:
		if d, ok := r.IncidentDate.Get(); ok {
			element.Children = append(element.Children, createSimpleElement("incidentDate", d.Format("2006-01-02")))
		}
		element.Children = append(element.Children, XMLElement{
			XMLName: xml.Name{Local: "segments"},
			Attributes: []xml.Attr{
				attr("offenses", strconv.Itoa(len(r.Offenses))),
				attr("properties", strconv.Itoa(len(r.Properties))),
				attr("victims", strconv.Itoa(len(r.Victims))),
				attr("offenders", strconv.Itoa(len(r.Offenders))),
				attr("arrestees", strconv.Itoa(len(r.Arrestees))),
			},
		})
		for _, o := range r.Offenses {
			element.Children = append(element.Children, buildOffenseElement(o, codes, options))
		}
	case *nibrs.GroupBArrestReport:
		if r.Arrestee != nil {
			arrest := XMLElement{
				XMLName: xml.Name{Local: "arrest"},
				Attributes: []xml.Attr{
					attr("ucr", r.Arrestee.UCROffenseCode),
				},
			}
			if d, ok := r.Arrestee.ArrestDate.Get(); ok {
				arrest.Attributes = append(arrest.Attributes, attr("date", d.Format("2006-01-02")))
			}
			if options.IncludeLabels {
				if label, ok := codes.Label(codetable.UCROffense, r.Arrestee.UCROffenseCode); ok {
					arrest.Children = append(arrest.Children, createSimpleElement("label", label))
				}
			}
			element.Children = append(element.Children, arrest)
		}
	}

	return element
}

// buildOffenseElement constructs an offense element with its bias motivations.
func buildOffenseElement(o *nibrs.Offense, codes *codetable.Set, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: "offense"},
		Attributes: []xml.Attr{
			attr("ucr", o.UCROffenseCode),
			attr("completed", o.AttemptedCompleted),
		},
	}
	if options.IncludeLabels {
		if label, ok := codes.Label(codetable.UCROffense, o.UCROffenseCode); ok {
			element.Children = append(element.Children, createSimpleElement("label", label))
		}
	}
	for _, bias := range o.BiasMotivations.All() {
		b := XMLElement{
			XMLName:    xml.Name{Local: "bias"},
			Attributes: []xml.Attr{attr("code", bias)},
		}
		if options.IncludeLabels {
			b.Value, _ = codes.Label(codetable.BiasMotivation, bias)
		}
		element.Children = append(element.Children, b)
	}
	return element
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

// marshalWithIndent marshals the document with indentation.
func marshalWithIndent(doc *XMLDocument, indent string) ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteString("<")
	buffer.WriteString(doc.XMLName.Local)

	for _, a := range doc.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	buffer.WriteString(">\n")

	for _, child := range doc.Children {
		writeElement(&buffer, child, indent, 1)
	}

	buffer.WriteString("</")
	buffer.WriteString(doc.XMLName.Local)
	buffer.WriteString(">\n")

	return buffer.Bytes(), nil
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
