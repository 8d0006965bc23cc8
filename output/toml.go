package output

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/towl-sh/towl/comment"
)

// TOMLFormatter renders a key-value document: a summary block followed by
// one block per type, keyed by the lower-cased type name.
type TOMLFormatter struct{}

type tomlSummary struct {
	TotalTodos  int `toml:"total_todos"`
	TotalGroups int `toml:"total_groups"`
}

type tomlItem struct {
	Description  string `toml:"description"`
	File         string `toml:"file"`
	Line         int    `toml:"line"`
	ColumnStart  int    `toml:"column_start"`
	ColumnEnd    int    `toml:"column_end"`
	OriginalText string `toml:"original_text"`
	Function     string `toml:"function,omitempty"`
}

type tomlGroup struct {
	Count int        `toml:"count"`
	Items []tomlItem `toml:"items"`
}

// tomlDocument fixes the block order: summary first, then the types in
// canonical order. Empty groups are omitted.
type tomlDocument struct {
	Summary tomlSummary `toml:"summary"`
	Todo    *tomlGroup  `toml:"todo,omitempty"`
	Fixme   *tomlGroup  `toml:"fixme,omitempty"`
	Hack    *tomlGroup  `toml:"hack,omitempty"`
	Note    *tomlGroup  `toml:"note,omitempty"`
	Bug     *tomlGroup  `toml:"bug,omitempty"`
}

// Format renders the grouped comments as a single TOML document.
func (f *TOMLFormatter) Format(groups map[comment.Type][]comment.Comment, total int) ([]string, error) {
	doc := tomlDocument{}

	groupCount := 0

	for _, typ := range comment.Types() {
		comments := groups[typ]
		if len(comments) == 0 {
			continue
		}

		groupCount++

		group := &tomlGroup{Count: len(comments)}

		for _, c := range comments {
			group.Items = append(group.Items, tomlItem{
				Description:  strings.TrimSpace(c.Description),
				File:         c.FilePath,
				Line:         c.LineNumber,
				ColumnStart:  c.ColumnStart,
				ColumnEnd:    c.ColumnEnd,
				OriginalText: strings.TrimSpace(c.OriginalText),
				Function:     c.Declaration,
			})
		}

		switch typ {
		case comment.TypeTodo:
			doc.Todo = group
		case comment.TypeFixme:
			doc.Fixme = group
		case comment.TypeHack:
			doc.Hack = group
		case comment.TypeNote:
			doc.Note = group
		case comment.TypeBug:
			doc.Bug = group
		}
	}

	doc.Summary = tomlSummary{TotalTodos: total, TotalGroups: groupCount}

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling toml: %w", err)
	}

	return []string{strings.TrimSuffix(string(out), "\n")}, nil
}
