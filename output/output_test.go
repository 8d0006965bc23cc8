package output_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towl-sh/towl/comment"
	"github.com/towl-sh/towl/output"
)

func testComment(typ comment.Type, desc string) comment.Comment {
	return comment.Comment{
		ID:           "test.rs_L3_C7",
		FilePath:     "src/test.rs",
		LineNumber:   3,
		ColumnStart:  7,
		ColumnEnd:    7 + len(desc),
		Type:         typ,
		OriginalText: "    // " + typ.String() + ": " + desc,
		Description:  desc,
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    output.Format
		wantErr bool
	}{
		"terminal":  {input: "terminal", want: output.FormatTerminal},
		"table":     {input: "table", want: output.FormatTable},
		"json":      {input: "json", want: output.FormatJSON},
		"csv":       {input: "csv", want: output.FormatCSV},
		"toml":      {input: "toml", want: output.FormatTOML},
		"markdown":  {input: "markdown", want: output.FormatMarkdown},
		"uppercase": {input: "JSON", want: output.FormatJSON},
		"unknown":   {input: "xml", wantErr: true},
		"empty":     {input: "", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := output.ParseFormat(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, output.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewFormatSinkCompatibility(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format output.Format
		path   string
		ok     bool
	}{
		"table to stdout":          {format: output.FormatTable, ok: true},
		"terminal to stdout":       {format: output.FormatTerminal, ok: true},
		"table to file":            {format: output.FormatTable, path: "out.txt"},
		"terminal to file":         {format: output.FormatTerminal, path: "out.md"},
		"json without path":        {format: output.FormatJSON},
		"json with json path":      {format: output.FormatJSON, path: "todos.json", ok: true},
		"json with txt path":       {format: output.FormatJSON, path: "todos.txt"},
		"json without extension":   {format: output.FormatJSON, path: "todos"},
		"csv with csv path":        {format: output.FormatCSV, path: "todos.csv", ok: true},
		"csv with json path":       {format: output.FormatCSV, path: "todos.json"},
		"toml with toml path":      {format: output.FormatTOML, path: "todos.toml", ok: true},
		"markdown with md path":    {format: output.FormatMarkdown, path: "todos.md", ok: true},
		"markdown with html path":  {format: output.FormatMarkdown, path: "todos.html"},
		"markdown with no path":    {format: output.FormatMarkdown},
		"unrecognized format name": {format: output.Format("xml"), path: "todos.xml"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := output.New(tc.format, tc.path)
			if !tc.ok {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestFilterType(t *testing.T) {
	t.Parallel()

	comments := []comment.Comment{
		testComment(comment.TypeTodo, "first"),
		testComment(comment.TypeFixme, "second"),
		testComment(comment.TypeTodo, "third"),
	}

	t.Run("empty name keeps everything", func(t *testing.T) {
		t.Parallel()

		got, err := output.FilterType(comments, "")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("filters case-insensitively", func(t *testing.T) {
		t.Parallel()

		got, err := output.FilterType(comments, "TODO")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Description)
		assert.Equal(t, "third", got[1].Description)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		t.Parallel()

		_, err := output.FilterType(comments, "wip")
		require.ErrorIs(t, err, comment.ErrUnknownType)
	})
}

func TestOutputWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.csv")

	out, err := output.New(output.FormatCSV, path)
	require.NoError(t, err)

	err = out.Write([]comment.Comment{testComment(comment.TypeTodo, "write me")})
	require.NoError(t, err)

	assert.FileExists(t, path)
}

func TestOutputWriteFileError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "todos.csv")

	out, err := output.New(output.FormatCSV, path)
	require.NoError(t, err)

	err = out.Write([]comment.Comment{testComment(comment.TypeTodo, "nope")})
	require.ErrorIs(t, err, output.ErrWrite)
}
