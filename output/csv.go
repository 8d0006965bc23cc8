package output

import (
	"strconv"
	"strings"

	"github.com/towl-sh/towl/comment"
)

// CSVFormatter renders one delimited record per comment under a fixed
// header row.
type CSVFormatter struct{}

// csvHeader fixes the column order for every row.
const csvHeader = "Type,Description,File,Line,Column Start,Column End,Function,Original Text"

// Format renders the grouped comments as CSV lines.
func (f *CSVFormatter) Format(groups map[comment.Type][]comment.Comment, _ int) ([]string, error) {
	lines := []string{csvHeader}

	for _, typ := range comment.Types() {
		for _, c := range groups[typ] {
			row := []string{
				escapeField(typ.String()),
				escapeField(strings.TrimSpace(c.Description)),
				escapeField(c.FilePath),
				strconv.Itoa(c.LineNumber),
				strconv.Itoa(c.ColumnStart),
				strconv.Itoa(c.ColumnEnd),
				escapeField(c.Declaration),
				escapeField(strings.TrimSpace(c.OriginalText)),
			}

			lines = append(lines, strings.Join(row, ","))
		}
	}

	return lines, nil
}

// escapeField wraps a field in quotes when it contains a delimiter, quote,
// or newline, doubling any embedded quotes.
func escapeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}

	return field
}
