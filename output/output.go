package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/towl-sh/towl/comment"
)

var (
	// ErrUnknownFormat indicates an unrecognized output format name.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrInvalidOutputPath indicates a missing, forbidden, or mismatched
	// output file path for the selected format.
	ErrInvalidOutputPath = errors.New("invalid output path")
	// ErrSerialize indicates a renderer failed to serialize the comments.
	ErrSerialize = errors.New("unable to format comments")
	// ErrWrite indicates a sink failed while writing rendered output.
	ErrWrite = errors.New("unable to write comments")
)

// Format selects one of the supported output representations. The set is
// closed and resolved once at startup.
type Format string

const (
	// FormatTerminal renders markdown-style output to standard output.
	FormatTerminal Format = "terminal"
	// FormatTable renders a bordered table to standard output.
	FormatTable Format = "table"
	// FormatJSON renders a structured JSON document to a .json file.
	FormatJSON Format = "json"
	// FormatCSV renders delimited records to a .csv file.
	FormatCSV Format = "csv"
	// FormatTOML renders a key-value document to a .toml file.
	FormatTOML Format = "toml"
	// FormatMarkdown renders markdown to a .md file.
	FormatMarkdown Format = "markdown"
)

// Formats returns the names of all supported formats.
func Formats() []string {
	return []string{
		string(FormatTerminal),
		string(FormatTable),
		string(FormatJSON),
		string(FormatCSV),
		string(FormatTOML),
		string(FormatMarkdown),
	}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats(), string(f)) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Formatter renders grouped comments plus a total count into output lines.
type Formatter interface {
	Format(groups map[comment.Type][]comment.Comment, total int) ([]string, error)
}

// Writer receives rendered output lines.
type Writer interface {
	Write(lines []string) error
}

// Output pairs a formatter with a sink.
type Output struct {
	formatter Formatter
	writer    Writer
}

// Option configures an [Output] created by [New].
type Option func(*options)

type options struct {
	includeContext bool
}

// WithContext makes the terminal and markdown formats include each comment's
// context lines. Other formats are unaffected.
func WithContext(include bool) Option {
	return func(o *options) {
		o.includeContext = include
	}
}

// New resolves the formatter and sink for format, enforcing the format/sink
// compatibility rules before any I/O: terminal and table refuse an output
// path, while json, csv, toml, and markdown require one carrying exactly the
// expected extension.
func New(format Format, outputPath string, opts ...Option) (*Output, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatTerminal:
		if outputPath != "" {
			return nil, fmt.Errorf("%w: terminal format cannot write to file", ErrInvalidOutputPath)
		}

		return &Output{formatter: &MarkdownFormatter{IncludeContext: o.includeContext}, writer: &StdoutWriter{}}, nil

	case FormatTable:
		if outputPath != "" {
			return nil, fmt.Errorf("%w: table format cannot write to file", ErrInvalidOutputPath)
		}

		return &Output{formatter: &TableFormatter{}, writer: &StdoutWriter{}}, nil

	case FormatJSON:
		err := validateExtension(format, outputPath, "json")
		if err != nil {
			return nil, err
		}

		return &Output{formatter: &JSONFormatter{}, writer: &FileWriter{Path: outputPath}}, nil

	case FormatCSV:
		err := validateExtension(format, outputPath, "csv")
		if err != nil {
			return nil, err
		}

		return &Output{formatter: &CSVFormatter{}, writer: &FileWriter{Path: outputPath}}, nil

	case FormatTOML:
		err := validateExtension(format, outputPath, "toml")
		if err != nil {
			return nil, err
		}

		return &Output{formatter: &TOMLFormatter{}, writer: &FileWriter{Path: outputPath}}, nil

	case FormatMarkdown:
		err := validateExtension(format, outputPath, "md")
		if err != nil {
			return nil, err
		}

		return &Output{formatter: &MarkdownFormatter{IncludeContext: o.includeContext}, writer: &FileWriter{Path: outputPath}}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// validateExtension checks that path is present and carries exactly the
// expected extension for the format.
func validateExtension(format Format, path, want string) error {
	if path == "" {
		return fmt.Errorf("%w: %s format requires an output file path", ErrInvalidOutputPath, format)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fmt.Errorf("%w: output file must have %q extension", ErrInvalidOutputPath, want)
	}

	if ext != want {
		return fmt.Errorf("%w: file extension %q does not match expected extension %q for this format",
			ErrInvalidOutputPath, ext, want)
	}

	return nil
}

// Write groups the comments by type, renders them, and hands the result to
// the sink. Rendering happens strictly after the scan completed; nothing is
// streamed.
func (o *Output) Write(comments []comment.Comment) error {
	groups := groupByType(comments)

	lines, err := o.formatter.Format(groups, len(comments))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	return o.writer.Write(lines)
}

// groupByType buckets comments by their type, preserving scan order within
// each bucket. Renderers iterate the buckets in canonical type order.
func groupByType(comments []comment.Comment) map[comment.Type][]comment.Comment {
	groups := make(map[comment.Type][]comment.Comment)

	for _, c := range comments {
		groups[c.Type] = append(groups[c.Type], c)
	}

	return groups
}

// FilterType returns only the comments whose type name equals name,
// case-insensitively. An empty name keeps everything; an unrecognized name
// is an error.
func FilterType(comments []comment.Comment, name string) ([]comment.Comment, error) {
	if name == "" {
		return comments, nil
	}

	typ, err := comment.ParseTypeName(name)
	if err != nil {
		return nil, err
	}

	var filtered []comment.Comment

	for _, c := range comments {
		if c.Type == typ {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}
