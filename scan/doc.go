// Package scan finds annotation comments (TODO, FIXME, HACK, NOTE, BUG) in
// source trees.
//
// Classification is line-oriented pattern matching over raw text; there is no
// language-aware parsing. A line is only inspected for markers after at least
// one configured comment-prefix pattern matches it, which keeps marker
// keywords inside ordinary string literals from being reported, at the cost
// of missing markers in comment styles not covered by the configured
// prefixes.
//
// [Scanner.Scan] walks a directory tree sequentially, reading each eligible
// file in full before considering the next. Per-file failures are logged and
// skipped; only a failure of the directory iteration itself aborts a scan.
//
// Typical usage compiles the configured patterns once and scans a root:
//
//	s, err := scan.New(opts)
//	comments, err := s.Scan("./src")
package scan
