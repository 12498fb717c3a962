package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows under bold headers, columns padded to their widest cell.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{writer: w, headers: headers}
	if opts != nil {
		t.noColor = opts.NoColor
	}
	return t
}

// AddRow adds a row to the table. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows added.
func (t *Table) Len() int { return len(t.rows) }

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	header := styled(t.noColor, color.Bold, color.FgCyan)
	rule := styled(t.noColor, color.FgHiBlack)

	cells := make([]string, len(widths))
	for i, h := range t.headers {
		cells[i] = header.Sprint(pad(h, widths[i], i == len(widths)-1))
	}
	fmt.Fprintln(t.writer, strings.Join(cells, "  "))

	for i, w := range widths {
		cells[i] = rule.Sprint(strings.Repeat("─", w))
	}
	fmt.Fprintln(t.writer, strings.Join(cells, "  "))

	for _, row := range t.rows {
		for i, cell := range row {
			cells[i] = pad(cell, widths[i], i == len(widths)-1)
		}
		fmt.Fprintln(t.writer, strings.Join(cells, "  "))
	}
}

// pad right-pads s to width. The last column is left ragged.
func pad(s string, width int, last bool) string {
	n := utf8.RuneCountInString(s)
	if last || n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func styled(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// KeyValueTable renders aligned "key: value" lines.
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	width := 0
	for _, k := range t.keys {
		width = max(width, utf8.RuneCountInString(k)+1)
	}
	key := styled(t.noColor, color.FgCyan)
	for i, k := range t.keys {
		key.Fprint(t.writer, pad(k+":", width, false))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Section renders a bold title followed by indented lines and a blank line.
type Section struct {
	writer  io.Writer
	title   string
	lines   []string
	noColor bool
}

// NewSection creates a new section
func NewSection(w io.Writer, title string, noColor bool) *Section {
	return &Section{writer: w, title: title, noColor: noColor}
}

// AddLine adds a line to the section content
func (s *Section) AddLine(line string) {
	s.lines = append(s.lines, line)
}

// AddLinef adds a formatted line to the section content
func (s *Section) AddLinef(format string, args ...any) {
	s.AddLine(fmt.Sprintf(format, args...))
}

// Render renders the section. A section without lines shows "(none)".
func (s *Section) Render() {
	styled(s.noColor, color.Bold, color.FgCyan).Fprintln(s.writer, s.title)
	if len(s.lines) == 0 {
		styled(s.noColor, color.FgHiBlack).Fprintln(s.writer, "  (none)")
	}
	for _, line := range s.lines {
		fmt.Fprintf(s.writer, "  %s\n", line)
	}
	fmt.Fprintln(s.writer)
}

// Header renders a bold title underlined to its own width
func Header(w io.Writer, title string, noColor bool) {
	styled(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	Divider(w, utf8.RuneCountInString(title), noColor)
}

// Divider renders a horizontal rule; width 0 means 80 columns.
func Divider(w io.Writer, width int, noColor bool) {
	if width == 0 {
		width = 80
	}
	styled(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", width))
}
