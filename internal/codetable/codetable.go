// =============================================================================
// NIBRS Flat File Ingest - Code Tables
// =============================================================================
//
// Code tables translate the short codes of a flat file (bias motivation "21",
// UCR offense "13A", sex "F") into their labels and back.
//
// A Set is built once, either from the built-in tables alone or from the
// built-ins overlaid with an XLSX workbook, and is read-only afterwards. It
// is passed explicitly to the components that need it.
//
// WORKBOOK LAYOUT:
//   One sheet per table; the sheet name is the table name. Column A holds the
//   code and column B the label. A first row whose column A reads "code" is
//   treated as a header.
//
//   | Column A | Column B                |
//   |----------|-------------------------|
//   | Code     | Label                   |
//   | 21       | Anti-Jewish             |
//   | 88       | None (no bias)          |
//
// =============================================================================

package codetable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// TABLE
// =============================================================================

// Table is one code-to-label mapping.
type Table struct {
	name    string
	labels  map[string]string
	codes   map[string]string
	ordered []string
}

func newTable(name string) *Table {
	return &Table{
		name:   name,
		labels: make(map[string]string),
		codes:  make(map[string]string),
	}
}

func (t *Table) put(code, label string) {
	if _, exists := t.labels[code]; !exists {
		t.ordered = append(t.ordered, code)
	}
	t.labels[code] = label
	t.codes[strings.ToLower(label)] = code
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of codes.
func (t *Table) Len() int { return len(t.ordered) }

// Label returns the label for code.
func (t *Table) Label(code string) (string, bool) {
	l, ok := t.labels[code]
	return l, ok
}

// Code returns the code for a label, ignoring case.
func (t *Table) Code(label string) (string, bool) {
	c, ok := t.codes[strings.ToLower(label)]
	return c, ok
}

// Contains reports whether code is in the table.
func (t *Table) Contains(code string) bool {
	_, ok := t.labels[code]
	return ok
}

// Codes returns the codes in insertion order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.ordered))
	copy(out, t.ordered)
	return out
}

func (t *Table) clone() *Table {
	c := newTable(t.name)
	for _, code := range t.ordered {
		c.put(code, t.labels[code])
	}
	return c
}

// =============================================================================
// SET
// =============================================================================

// Set is a read-only collection of tables.
type Set struct {
	tables map[string]*Table
}

// Default returns a Set holding only the built-in tables.
func Default() *Set {
	s := &Set{tables: make(map[string]*Table, len(builtin))}
	for name, entries := range builtin {
		t := newTable(name)
		for _, e := range entries {
			t.put(e.code, e.label)
		}
		s.tables[name] = t
	}
	return s
}

// Table returns the named table, or nil.
func (s *Set) Table(name string) *Table {
	return s.tables[name]
}

// Label translates code through the named table. Unknown tables and codes
// return ok == false.
func (s *Set) Label(table, code string) (string, bool) {
	t := s.tables[table]
	if t == nil {
		return "", false
	}
	return t.Label(code)
}

// Names returns the table names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// WORKBOOK LOADING
// =============================================================================

// Load returns the built-in tables overlaid with every sheet of the workbook
// at path. Workbook rows replace built-in labels for the same code and add
// new codes; sheets with unknown names become new tables.
//
// PARAMETERS:
//   - path: The path to the XLSX workbook. Empty returns Default().
//
// RETURNS:
//   - The merged Set.
//   - An error if the workbook cannot be opened or a sheet cannot be read.
func Load(path string) (*Set, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open code table workbook: %w", err)
	}
	defer f.Close()

	merged := &Set{tables: make(map[string]*Table, len(base.tables))}
	for name, t := range base.tables {
		merged.tables[name] = t.clone()
	}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}

		name := strings.ToLower(strings.TrimSpace(sheet))
		t := merged.tables[name]
		if t == nil {
			t = newTable(name)
			merged.tables[name] = t
		}

		for i, row := range rows {
			if len(row) < 2 {
				continue
			}
			code := strings.TrimSpace(row[0])
			label := strings.TrimSpace(row[1])
			if i == 0 && strings.EqualFold(code, "code") {
				continue
			}
			if code == "" {
				continue
			}
			t.put(code, label)
		}
	}

	return merged, nil
}
