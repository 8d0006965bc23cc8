package config

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns a JSON Schema describing the .towl.toml configuration
// file, suitable for editor validation.
func Schema() *jsonschema.Schema {
	stringList := func(description string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:        "array",
			Description: description,
			Items:       &jsonschema.Schema{Type: "string"},
		}
	}

	return &jsonschema.Schema{
		Type:        "object",
		Description: "towl configuration",
		Properties: map[string]*jsonschema.Schema{
			"parsing": {
				Type:        "object",
				Description: "What the scanner matches.",
				Properties: map[string]*jsonschema.Schema{
					"file_extensions":  stringList("File extensions to scan, without leading dots. Matching is exact and case-sensitive."),
					"exclude_patterns": stringList("Glob patterns excluded from the walk, relative to the scan root."),
					"include_context_lines": {
						Type:        "integer",
						Description: "Number of neighboring lines captured on each side of a match.",
					},
					"comment_prefixes":  stringList("Patterns identifying comment-like lines. Lines matching none are never scanned for markers."),
					"todo_patterns":     stringList("Marker patterns. Each pattern's source text must contain TODO, FIXME, HACK, NOTE, or BUG."),
					"function_patterns": stringList("Patterns identifying named declarations for the enclosing-declaration hint."),
				},
			},
			"output": {
				Type:        "object",
				Description: "Reporting behavior.",
				Properties: map[string]*jsonschema.Schema{
					"verbose": {Type: "boolean", Description: "Enable debug logging."},
				},
			},
			"github": {
				Type:        "object",
				Description: "Repository used by the issues command. The token is read from TOWL_GITHUB_TOKEN, never from this file.",
				Properties: map[string]*jsonschema.Schema{
					"owner": {Type: "string", Description: "GitHub repository owner."},
					"repo":  {Type: "string", Description: "GitHub repository name."},
				},
			},
		},
	}
}
