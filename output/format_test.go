package output_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towl-sh/towl/comment"
	"github.com/towl-sh/towl/output"
)

// testGroups builds a two-group fixture: one Todo with a declaration and
// context, one Fixme with neither.
func testGroups() (map[comment.Type][]comment.Comment, int) {
	todo := comment.Comment{
		ID:           "main.rs_L10_C7",
		FilePath:     "src/main.rs",
		LineNumber:   10,
		ColumnStart:  7,
		ColumnEnd:    30,
		Type:         comment.TypeTodo,
		OriginalText: "    // TODO: Implement feature",
		Description:  "Implement feature",
		ContextLines: []string{"9: fn main() {", "11: }"},
		Declaration:  "main:9",
	}
	fixme := comment.Comment{
		ID:           "lib.rs_L5_C3",
		FilePath:     "src/lib.rs",
		LineNumber:   5,
		ColumnStart:  3,
		ColumnEnd:    18,
		Type:         comment.TypeFixme,
		OriginalText: "// FIXME: Fix bug",
		Description:  "Fix bug",
	}

	return map[comment.Type][]comment.Comment{
		comment.TypeTodo:  {todo},
		comment.TypeFixme: {fixme},
	}, 2
}

func TestMarkdownFormatter(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.MarkdownFormatter{}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)

	want := []string{
		"# TODO Comments",
		"",
		"Found 2 TODO comments:",
		"",
		"## Todo (1 items)",
		"",
		"- **Implement feature** @ `src/main.rs:10` (in `main:9`)",
		"",
		"## Fixme (1 items)",
		"",
		"- **Fix bug** @ `src/lib.rs:5`",
		"",
	}
	assert.Equal(t, want, lines)
}

func TestMarkdownFormatterWithContext(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.MarkdownFormatter{IncludeContext: true}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)

	assert.Contains(t, lines, "  > 9: fn main() {")
	assert.Contains(t, lines, "  > 11: }")
}

func TestTableFormatterEmpty(t *testing.T) {
	t.Parallel()

	f := &output.TableFormatter{}
	lines, err := f.Format(map[comment.Type][]comment.Comment{}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"No TODO comments found."}, lines)
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.TableFormatter{}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 7)

	assert.Equal(t, "Found 2 TODO comments in 2 groups", lines[0])
	assert.Equal(t, "", lines[1])

	// Every border and row line has the same display width.
	width := utf8.RuneCountInString(lines[2])
	for _, line := range lines[2:] {
		assert.Equal(t, width, utf8.RuneCountInString(line), line)
	}

	content := strings.Join(lines, "\n")
	assert.Contains(t, content, "Implement feature")
	assert.Contains(t, content, "Fix bug")
	assert.Contains(t, content, "main:9")

	// Canonical group order puts Todo rows before Fixme rows.
	assert.Less(t, strings.Index(content, "Implement feature"), strings.Index(content, "Fix bug"))
}

func TestTableFormatterTruncatesLongValues(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	groups := map[comment.Type][]comment.Comment{
		comment.TypeTodo: {{
			Type:        comment.TypeTodo,
			FilePath:    "a.rs",
			LineNumber:  1,
			Description: long,
		}},
	}

	f := &output.TableFormatter{}
	lines, err := f.Format(groups, 1)
	require.NoError(t, err)

	content := strings.Join(lines, "\n")
	assert.NotContains(t, content, long)
	assert.Contains(t, content, strings.Repeat("x", 49)+"…")
}

func TestCSVFormatter(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.CSVFormatter{}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "Type,Description,File,Line,Column Start,Column End,Function,Original Text", lines[0])
	assert.Equal(t, "Todo,Implement feature,src/main.rs,10,7,30,main:9,// TODO: Implement feature", lines[1])
	assert.Equal(t, "Fixme,Fix bug,src/lib.rs,5,3,18,,// FIXME: Fix bug", lines[2])
}

func TestCSVFormatterEscaping(t *testing.T) {
	t.Parallel()

	groups := map[comment.Type][]comment.Comment{
		comment.TypeTodo: {{
			Type:         comment.TypeTodo,
			FilePath:     "a.rs",
			LineNumber:   1,
			Description:  `fix "this", please`,
			OriginalText: `// TODO: fix "this", please`,
		}},
	}

	f := &output.CSVFormatter{}
	lines, err := f.Format(groups, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Contains(t, lines[1], `"fix ""this"", please"`)
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.JSONFormatter{}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	var doc struct {
		Summary struct {
			TotalTodos  int `json:"total_todos"`
			TotalGroups int `json:"total_groups"`
		} `json:"summary"`
		Groups []struct {
			Type  string `json:"type"`
			Count int    `json:"count"`
			Items []struct {
				ID           string   `json:"id"`
				Description  string   `json:"description"`
				File         string   `json:"file"`
				Line         int      `json:"line"`
				ColumnStart  int      `json:"column_start"`
				ColumnEnd    int      `json:"column_end"`
				OriginalText string   `json:"original_text"`
				ContextLines []string `json:"context_lines"`
				Function     string   `json:"function"`
			} `json:"items"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))

	assert.Equal(t, 2, doc.Summary.TotalTodos)
	assert.Equal(t, 2, doc.Summary.TotalGroups)

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "Todo", doc.Groups[0].Type)
	assert.Equal(t, "Fixme", doc.Groups[1].Type)

	require.Len(t, doc.Groups[0].Items, 1)
	item := doc.Groups[0].Items[0]
	assert.Equal(t, "main.rs_L10_C7", item.ID)
	assert.Equal(t, "Implement feature", item.Description)
	assert.Equal(t, "src/main.rs", item.File)
	assert.Equal(t, 10, item.Line)
	assert.Equal(t, 7, item.ColumnStart)
	assert.Equal(t, 30, item.ColumnEnd)
	assert.Equal(t, "// TODO: Implement feature", item.OriginalText)
	assert.Equal(t, []string{"9: fn main() {", "11: }"}, item.ContextLines)
	assert.Equal(t, "main:9", item.Function)
}

func TestJSONFormatterEmpty(t *testing.T) {
	t.Parallel()

	f := &output.JSONFormatter{}
	lines, err := f.Format(map[comment.Type][]comment.Comment{}, 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
	assert.Contains(t, doc, "summary")
	assert.Contains(t, doc, "groups")
}

func TestTOMLFormatter(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	f := &output.TOMLFormatter{}
	lines, err := f.Format(groups, total)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	var doc struct {
		Summary struct {
			TotalTodos  int `toml:"total_todos"`
			TotalGroups int `toml:"total_groups"`
		} `toml:"summary"`
		Todo struct {
			Count int `toml:"count"`
			Items []struct {
				Description string `toml:"description"`
				File        string `toml:"file"`
				Line        int    `toml:"line"`
			} `toml:"items"`
		} `toml:"todo"`
		Fixme struct {
			Count int `toml:"count"`
		} `toml:"fixme"`
	}
	require.NoError(t, toml.Unmarshal([]byte(lines[0]), &doc))

	assert.Equal(t, 2, doc.Summary.TotalTodos)
	assert.Equal(t, 2, doc.Summary.TotalGroups)
	assert.Equal(t, 1, doc.Todo.Count)
	require.Len(t, doc.Todo.Items, 1)
	assert.Equal(t, "Implement feature", doc.Todo.Items[0].Description)
	assert.Equal(t, 1, doc.Fixme.Count)

	// Blocks come out in canonical order.
	assert.Less(t, strings.Index(lines[0], "[summary]"), strings.Index(lines[0], "[todo"))
	assert.Less(t, strings.Index(lines[0], "[todo"), strings.Index(lines[0], "[fixme"))
}

func TestFormattersAreDeterministic(t *testing.T) {
	t.Parallel()

	groups, total := testGroups()

	for _, f := range []output.Formatter{
		&output.MarkdownFormatter{},
		&output.TableFormatter{},
		&output.JSONFormatter{},
		&output.CSVFormatter{},
		&output.TOMLFormatter{},
	} {
		first, err := f.Format(groups, total)
		require.NoError(t, err)

		for range 5 {
			again, err := f.Format(groups, total)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}
