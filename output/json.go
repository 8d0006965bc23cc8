package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/towl-sh/towl/comment"
)

// JSONFormatter renders one structured document: a summary plus a list of
// per-type groups carrying every comment field.
type JSONFormatter struct{}

type jsonItem struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	ColumnStart  int      `json:"column_start"`
	ColumnEnd    int      `json:"column_end"`
	OriginalText string   `json:"original_text"`
	ContextLines []string `json:"context_lines,omitempty"`
	Function     string   `json:"function,omitempty"`
}

type jsonGroup struct {
	Type  string     `json:"type"`
	Count int        `json:"count"`
	Items []jsonItem `json:"items"`
}

type jsonDocument struct {
	Summary struct {
		TotalTodos  int `json:"total_todos"`
		TotalGroups int `json:"total_groups"`
	} `json:"summary"`
	Groups []jsonGroup `json:"groups"`
}

// Format renders the grouped comments as a single pretty-printed JSON
// document.
func (f *JSONFormatter) Format(groups map[comment.Type][]comment.Comment, total int) ([]string, error) {
	doc := jsonDocument{Groups: []jsonGroup{}}

	for _, typ := range comment.Types() {
		comments := groups[typ]
		if len(comments) == 0 {
			continue
		}

		group := jsonGroup{Type: typ.String(), Count: len(comments)}

		for _, c := range comments {
			group.Items = append(group.Items, jsonItem{
				ID:           c.ID,
				Description:  strings.TrimSpace(c.Description),
				File:         c.FilePath,
				Line:         c.LineNumber,
				ColumnStart:  c.ColumnStart,
				ColumnEnd:    c.ColumnEnd,
				OriginalText: strings.TrimSpace(c.OriginalText),
				ContextLines: c.ContextLines,
				Function:     c.Declaration,
			})
		}

		doc.Groups = append(doc.Groups, group)
	}

	doc.Summary.TotalTodos = total
	doc.Summary.TotalGroups = len(doc.Groups)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling json: %w", err)
	}

	return []string{string(out)}, nil
}
