package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/towl-sh/towl/comment"
)

// Column caps keep a single oversized value from blowing up the whole table.
// Truncation is independent per column.
const (
	maxDescriptionWidth = 50
	maxFileWidth        = 40
	maxFunctionWidth    = 30
)

// TableFormatter renders a bordered table for console display.
type TableFormatter struct{}

// tableWidths holds per-column display widths.
type tableWidths struct {
	typ, desc, file, line, fn int
}

// Format renders the grouped comments as a box-drawn table preceded by a
// summary line. With nothing to show it emits a single notice instead of an
// empty table.
func (f *TableFormatter) Format(groups map[comment.Type][]comment.Comment, total int) ([]string, error) {
	if total == 0 {
		return []string{"No TODO comments found."}, nil
	}

	lines := []string{
		fmt.Sprintf("Found %d TODO comment%s in %d group%s",
			total, plural(total), len(groups), plural(len(groups))),
		"",
	}

	w := columnWidths(groups)

	lines = append(lines,
		separator(w, "┌", "┬", "┐"),
		row([5]string{"Type", "Description", "File", "Line", "Function"}, w, true),
		separator(w, "├", "┼", "┤"),
	)

	for _, typ := range comment.Types() {
		for _, c := range groups[typ] {
			lines = append(lines, row([5]string{
				typ.String(),
				strings.TrimSpace(c.Description),
				c.FilePath,
				strconv.Itoa(c.LineNumber),
				c.Declaration,
			}, w, false))
		}
	}

	lines = append(lines, separator(w, "└", "┴", "┘"))

	return lines, nil
}

// columnWidths computes each column's width as the maximum over the header
// and all values, with the per-column caps applied.
func columnWidths(groups map[comment.Type][]comment.Comment) tableWidths {
	w := tableWidths{typ: 4, desc: 11, file: 4, line: 4, fn: 8}

	for typ, comments := range groups {
		w.typ = max(w.typ, runeLen(typ.String()))

		for _, c := range comments {
			w.desc = max(w.desc, min(runeLen(strings.TrimSpace(c.Description)), maxDescriptionWidth))
			w.file = max(w.file, min(runeLen(c.FilePath), maxFileWidth))
			w.line = max(w.line, runeLen(strconv.Itoa(c.LineNumber)))

			if c.Declaration != "" {
				w.fn = max(w.fn, min(runeLen(c.Declaration), maxFunctionWidth))
			}
		}
	}

	return w
}

// row renders one table row. The line number is right-aligned except in the
// header.
func row(cells [5]string, w tableWidths, header bool) string {
	return "│ " + pad(cells[0], w.typ, false) +
		" │ " + pad(cells[1], w.desc, false) +
		" │ " + pad(cells[2], w.file, false) +
		" │ " + pad(cells[3], w.line, !header) +
		" │ " + pad(cells[4], w.fn, false) + " │"
}

// separator renders a horizontal border with the given corner and junction
// runes.
func separator(w tableWidths, left, cross, right string) string {
	parts := []string{
		strings.Repeat("─", w.typ+2),
		strings.Repeat("─", w.desc+2),
		strings.Repeat("─", w.file+2),
		strings.Repeat("─", w.line+2),
		strings.Repeat("─", w.fn+2),
	}

	return left + strings.Join(parts, cross) + right
}

// pad truncates s to width and pads it with spaces, right-aligning when
// requested.
func pad(s string, width int, right bool) string {
	s = truncate(s, width)

	fill := strings.Repeat(" ", width-runeLen(s))
	if right {
		return fill + s
	}

	return s + fill
}

// truncate shortens s to at most maxLen runes, marking the cut with an
// ellipsis.
func truncate(s string, maxLen int) string {
	if runeLen(s) <= maxLen {
		return s
	}

	if maxLen == 0 {
		return ""
	}

	return string([]rune(s)[:maxLen-1]) + "…"
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
