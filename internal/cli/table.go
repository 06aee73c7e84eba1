package cli

import (
	"strings"
	"unicode/utf8"
)

// Table is a plain-text table with dynamic column widths. Cell widths are
// measured in runes with ANSI colour sequences ignored, so swatch cells line up.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // Maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth sets a maximum width for a column. Longer cells wrap.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	fixed := make([]string, len(t.headers))
	copy(fixed, row)
	t.rows = append(t.rows, fixed)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrapped := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrapped[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth := t.maxWidths[colIdx]; maxWidth > 0 {
				wrapped[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrapped[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleWidth(h)
	}
	for _, row := range wrapped {
		for i, lines := range row {
			for _, line := range lines {
				colWidths[i] = max(colWidths[i], visibleWidth(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, colWidths[i])
		}
		b.WriteString(strings.Join(parts, sep))
		b.WriteString("\n")
	}

	writeLine(t.headers)

	rule := make([]string, len(colWidths))
	for i, w := range colWidths {
		rule[i] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range wrapped {
		lines := 1
		for _, cell := range row {
			lines = max(lines, len(cell))
		}
		for l := 0; l < lines; l++ {
			cells := make([]string, len(t.headers))
			for c := range t.headers {
				if l < len(row[c]) {
					cells[c] = row[c][l]
				}
			}
			writeLine(cells)
		}
	}

	return b.String()
}

// visibleWidth returns the number of runes in s outside ANSI escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case inEscape:
			if r >= '@' && r <= '~' && r != '[' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			width++
		}
	}
	return width
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	w := visibleWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapText wraps text to width runes, breaking at word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if utf8.RuneCountInString(candidate) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
