package scan

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/towl-sh/towl/comment"
)

var (
	// ErrInvalidPattern indicates a configured pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrRead indicates a file could not be read.
	ErrRead = errors.New("unable to read file")
	// ErrInvalidPath indicates a path could not be canonicalized.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path resolved outside the scanned tree.
	ErrPathTraversal = errors.New("path traversal is not supported")
	// ErrWalk indicates the directory iteration itself failed.
	ErrWalk = errors.New("unable to walk tree")
)

// Options holds the scanning configuration consumed by [New]. All pattern
// families are ordered; matching respects configuration order.
type Options struct {
	// FileExtensions is the extension allow-list, without leading dots.
	// Matching is exact and case-sensitive.
	FileExtensions []string
	// ExcludePatterns are glob patterns matched against paths relative to
	// the scan root. An invalid pattern is logged and skipped.
	ExcludePatterns []string
	// ContextLines is the number of neighboring lines captured on each
	// side of a match.
	ContextLines int
	// CommentPrefixes identify comment-like lines, independent of marker
	// content.
	CommentPrefixes []string
	// MarkerPatterns detect annotations. Each pattern's own source text
	// must contain a recognized marker keyword, which binds its type.
	MarkerPatterns []string
	// DeclarationPatterns identify named declarations (e.g. function
	// signatures) used for the enclosing-declaration hint.
	DeclarationPatterns []string
}

// markerPattern is a compiled marker pattern with the type bound from its
// source text.
type markerPattern struct {
	re  *regexp.Regexp
	typ comment.Type
}

// patterns holds all compiled pattern families. Compilation happens once in
// [compilePatterns]; the result is immutable.
type patterns struct {
	prefixes []*regexp.Regexp
	markers  []markerPattern
	decls    []*regexp.Regexp
}

// compilePatterns compiles every configured pattern. Any compile failure, or
// a marker pattern whose source text carries no recognized keyword, is fatal:
// no partially-usable set is returned.
func compilePatterns(opts Options) (*patterns, error) {
	p := &patterns{}

	for _, expr := range opts.CommentPrefixes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: comment prefix %q: %w", ErrInvalidPattern, expr, err)
		}

		p.prefixes = append(p.prefixes, re)
	}

	for _, expr := range opts.MarkerPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: marker pattern %q: %w", ErrInvalidPattern, expr, err)
		}

		typ, err := comment.ParseType(expr)
		if err != nil {
			return nil, fmt.Errorf("marker pattern %q: %w", expr, err)
		}

		p.markers = append(p.markers, markerPattern{re: re, typ: typ})
	}

	for _, expr := range opts.DeclarationPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: declaration pattern %q: %w", ErrInvalidPattern, expr, err)
		}

		p.decls = append(p.decls, re)
	}

	return p, nil
}
