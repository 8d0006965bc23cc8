package comment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType indicates that no marker keyword could be recognized.
var ErrUnknownType = errors.New("unknown annotation type")

// Type classifies an annotation comment by its marker keyword.
type Type int

const (
	// TypeTodo marks work that still needs doing.
	TypeTodo Type = iota
	// TypeFixme marks something known to be broken.
	TypeFixme
	// TypeHack marks a workaround that should be revisited.
	TypeHack
	// TypeNote marks an informational remark.
	TypeNote
	// TypeBug marks a known defect.
	TypeBug
)

// Types returns all annotation types in their canonical order. Renderers
// iterate groups in this order so output is stable across runs.
func Types() []Type {
	return []Type{TypeTodo, TypeFixme, TypeHack, TypeNote, TypeBug}
}

// String returns the display name of the type.
func (t Type) String() string {
	switch t {
	case TypeTodo:
		return "Todo"
	case TypeFixme:
		return "Fixme"
	case TypeHack:
		return "Hack"
	case TypeNote:
		return "Note"
	case TypeBug:
		return "Bug"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType infers the annotation type from a marker pattern's own source
// text by searching for a recognized keyword, case-insensitively and in
// canonical order. The pattern text is inspected, not any matched content;
// a configured pattern whose source carries no keyword is a configuration
// error.
func ParseType(s string) (Type, error) {
	upper := strings.ToUpper(s)

	for _, t := range Types() {
		if strings.Contains(upper, strings.ToUpper(t.String())) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// ParseTypeName matches a user-supplied type name (e.g. a --type filter
// value) against the known type names, case-insensitively and exactly.
func ParseTypeName(name string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Comment is one annotation found in a scanned file. All fields are set at
// creation and never mutated; grouping and rendering only read them.
type Comment struct {
	// ID combines the file base name, 1-indexed line number, and match
	// start column. It is for display and debugging only; two same-named
	// files in different directories can produce colliding IDs.
	ID string
	// FilePath is the path as supplied by the tree walk.
	FilePath string
	// LineNumber is 1-indexed.
	LineNumber int
	// ColumnStart and ColumnEnd are byte offsets of the full marker
	// pattern match within the raw line.
	ColumnStart int
	ColumnEnd   int
	// Type is the marker classification bound to the matching pattern.
	Type Type
	// OriginalText is the full raw line, untrimmed.
	OriginalText string
	// Description is the trimmed first capture group of the matching
	// pattern, the trimmed full match when the pattern has no group, or
	// "No description" when both are empty.
	Description string
	// ContextLines holds the neighboring lines, each prefixed with its
	// 1-indexed line number, in ascending order and excluding the
	// comment's own line.
	ContextLines []string
	// Declaration is the nearest preceding declaration as "name:line",
	// or empty when no declaration pattern matched at or above the
	// comment.
	Declaration string
}
