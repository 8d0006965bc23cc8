package scan

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/towl-sh/towl/comment"
)

// noDescription is reported when a match carries no usable text.
const noDescription = "No description"

// Parser turns one file's content into annotation comments. It is safe for
// reuse across files; all pattern state is compiled once and immutable.
type Parser struct {
	patterns     *patterns
	contextLines int
}

// NewParser compiles the configured patterns into a [Parser]. Pattern
// compilation failures are fatal.
func NewParser(opts Options) (*Parser, error) {
	p, err := compilePatterns(opts)
	if err != nil {
		return nil, err
	}

	return &Parser{patterns: p, contextLines: opts.ContextLines}, nil
}

// Parse scans content line by line and returns every annotation found.
//
// A line is considered only when at least one comment-prefix pattern matches
// it. Each marker pattern is then tested independently and in order; a line
// containing several distinct markers yields one comment per matching
// pattern.
func (p *Parser) Parse(path, content string) ([]comment.Comment, error) {
	var comments []comment.Comment

	lines := splitLines(content)

	for idx, line := range lines {
		if !p.isComment(line) {
			continue
		}

		for _, mp := range p.patterns.markers {
			loc := mp.re.FindStringSubmatchIndex(line)
			if loc == nil {
				continue
			}

			comments = append(comments, p.extract(path, line, idx, lines, mp, loc))
		}
	}

	return comments, nil
}

// isComment reports whether any comment-prefix pattern matches the line.
func (p *Parser) isComment(line string) bool {
	for _, re := range p.patterns.prefixes {
		if re.MatchString(line) {
			return true
		}
	}

	return false
}

// extract builds one comment from a marker match. loc is the submatch index
// slice for the full match and any capture groups.
func (p *Parser) extract(path, line string, idx int, lines []string, mp markerPattern, loc []int) comment.Comment {
	start, end := loc[0], loc[1]

	description := ""
	if len(loc) >= 4 && loc[2] >= 0 {
		description = strings.TrimSpace(line[loc[2]:loc[3]])
	}

	if description == "" {
		description = strings.TrimSpace(line[start:end])
	}

	if description == "" {
		description = noDescription
	}

	return comment.Comment{
		ID:           fmt.Sprintf("%s_L%d_C%d", filepath.Base(path), idx+1, start),
		FilePath:     path,
		LineNumber:   idx + 1,
		ColumnStart:  start,
		ColumnEnd:    end,
		Type:         mp.typ,
		OriginalText: line,
		Description:  description,
		ContextLines: extractContext(lines, idx, p.contextLines),
		Declaration:  p.findDeclaration(lines, idx),
	}
}

// extractContext returns the lines in [current-window, current+window],
// clamped to the file bounds and excluding the current line, each prefixed
// with its 1-indexed line number.
func extractContext(lines []string, current, window int) []string {
	start := current - window
	if start < 0 {
		start = 0
	}

	end := current + window + 1
	if end > len(lines) {
		end = len(lines)
	}

	var context []string

	for i := start; i < end; i++ {
		if i == current {
			continue
		}

		context = append(context, fmt.Sprintf("%d: %s", i+1, lines[i]))
	}

	return context
}

// findDeclaration scans backward from current for the nearest line matching
// a declaration pattern and returns "name:line" (1-indexed), or "" when no
// declaration precedes the comment.
//
// This is a single backward pass with no scope or indentation awareness: the
// nearest preceding declaration wins even when it belongs to a sibling or
// enclosing scope rather than the one containing the comment.
func (p *Parser) findDeclaration(lines []string, current int) string {
	for i := current; i >= 0; i-- {
		for _, re := range p.patterns.decls {
			m := re.FindStringSubmatch(lines[i])
			if m == nil {
				continue
			}

			for _, name := range m[1:] {
				if name != "" && isIdentifier(name) {
					return fmt.Sprintf("%s:%d", name, i+1)
				}
			}
		}
	}

	return ""
}

// isIdentifier reports whether s consists solely of letters, digits, and
// underscores.
func isIdentifier(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

// splitLines splits content into lines without the trailing newline
// producing a phantom empty line, and without carriage returns.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
