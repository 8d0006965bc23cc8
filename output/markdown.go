package output

import (
	"fmt"
	"strings"

	"github.com/towl-sh/towl/comment"
)

// MarkdownFormatter renders a line-delimited hierarchical report: a title, a
// total count, and per-type sections with one bullet per comment. It serves
// both the terminal format and the markdown file format.
type MarkdownFormatter struct {
	// IncludeContext appends each comment's context lines as a blockquote
	// under its bullet.
	IncludeContext bool
}

// Format renders the grouped comments as markdown lines.
func (f *MarkdownFormatter) Format(groups map[comment.Type][]comment.Comment, total int) ([]string, error) {
	lines := []string{
		"# TODO Comments",
		"",
		fmt.Sprintf("Found %d TODO comments:", total),
		"",
	}

	for _, typ := range comment.Types() {
		comments := groups[typ]
		if len(comments) == 0 {
			continue
		}

		lines = append(lines, fmt.Sprintf("## %s (%d items)", typ, len(comments)), "")

		for _, c := range comments {
			location := fmt.Sprintf("%s:%d", c.FilePath, c.LineNumber)

			if c.Declaration != "" {
				lines = append(lines, fmt.Sprintf("- **%s** @ `%s` (in `%s`)",
					strings.TrimSpace(c.Description), location, c.Declaration))
			} else {
				lines = append(lines, fmt.Sprintf("- **%s** @ `%s`",
					strings.TrimSpace(c.Description), location))
			}

			if f.IncludeContext {
				for _, ctx := range c.ContextLines {
					lines = append(lines, fmt.Sprintf("  > %s", ctx))
				}
			}
		}

		lines = append(lines, "")
	}

	return lines, nil
}
