// Package output renders scanned annotation comments grouped by type and
// writes the result to a console or file sink.
//
// A [Format] selects one of a closed set of representations: terminal and
// table render to standard output, while json, csv, toml, and markdown
// require an output file whose extension matches the format. The pairing is
// enforced by [New] before any rendering or I/O happens; a mismatch is an
// [ErrInvalidOutputPath].
//
// Groups are always rendered in the canonical type order from
// [github.com/towl-sh/towl/comment.Types], so output is stable across runs.
//
// [Config] bridges CLI flags to the package in the usual
// RegisterFlags / RegisterCompletions / NewOutput shape:
//
//	cfg := output.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//	_ = cfg.RegisterCompletions(cmd)
//
//	out, err := cfg.NewOutput()
//	err = out.Write(comments)
package output
