package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/towl-sh/towl/comment"
)

// Scanner walks a directory tree and collects annotation comments from every
// eligible file.
type Scanner struct {
	parser   *Parser
	opts     Options
	excludes []string
}

// New compiles the configured patterns and returns a ready [Scanner].
// Invalid exclude globs are logged and dropped; invalid comment, marker, or
// declaration patterns are fatal.
func New(opts Options) (*Scanner, error) {
	parser, err := NewParser(opts)
	if err != nil {
		return nil, err
	}

	var excludes []string

	for _, pattern := range opts.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			slog.Debug("skipping invalid exclude pattern", "pattern", pattern)

			continue
		}

		excludes = append(excludes, pattern)
	}

	return &Scanner{parser: parser, opts: opts, excludes: excludes}, nil
}

// Scan walks root sequentially and returns all comments found, in directory
// iteration order. Hidden entries are visited and VCS ignore rules are not
// honored; only the configured exclude globs filter the walk. Symlinked
// files are followed and canonicalized before reading; symlinked directories
// are not descended into. A file that cannot be read or parsed is logged and
// contributes nothing; a failure of the iteration itself aborts the scan.
func (s *Scanner) Scan(root string) ([]comment.Comment, error) {
	slog.Debug("scanning", "root", root)

	// The walker joins and cleans child paths, so a parent-directory marker
	// in the supplied root never survives onto the per-file paths. It taints
	// every candidate underneath it.
	rootTainted := strings.Contains(root, "..")
	if rootTainted {
		slog.Debug("root contains a parent-directory marker, no files are eligible", "root", root)
	}

	var comments []comment.Comment

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWalk, path, err)
		}

		rel := relativeTo(root, path)

		if d.IsDir() {
			if rel != "." && s.isExcluded(rel) {
				slog.Debug("excluded directory", "path", path)

				return filepath.SkipDir
			}

			return nil
		}

		if rootTainted || s.isExcluded(rel) || !s.shouldScan(path) {
			slog.Debug("file will not be scanned", "path", path)

			return nil
		}

		fileComments, err := s.scanFile(path)
		if err != nil {
			slog.Error("error scanning file", "path", path, "err", err)

			return nil
		}

		slog.Debug("scanned file", "path", path, "comments", len(fileComments))
		comments = append(comments, fileComments...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// shouldScan reports whether path names a regular file, statting through
// symlinks so a link to a regular file stays eligible, whose path string is
// free of parent-directory markers and whose extension is in the allow-list.
// Extension matching is exact and case-sensitive.
func (s *Scanner) shouldScan(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if strings.Contains(path, "..") {
		return false
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}

	for _, allowed := range s.opts.FileExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

// isExcluded reports whether any exclude glob matches the root-relative
// path.
func (s *Scanner) isExcluded(rel string) bool {
	for _, pattern := range s.excludes {
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err == nil && ok {
			return true
		}
	}

	return false
}

// scanFile canonicalizes, reads, and parses one file. Symlinks are resolved
// first and the canonical form is re-checked for parent-directory markers
// before any read happens.
func (s *Scanner) scanFile(path string) ([]comment.Comment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, path, err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, path, err)
	}

	if strings.Contains(canonical, "..") {
		return nil, fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	return s.parser.Parse(path, string(content))
}

// relativeTo returns path relative to root, falling back to path itself when
// no relative form exists.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}

	return rel
}
