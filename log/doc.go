// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports two output formats ([FormatJSON] and [FormatLogfmt]) and the
// usual severity levels. [Config] bridges CLI flags via
// [github.com/spf13/pflag], with shell completion support via
// [github.com/spf13/cobra].
//
// Typical usage registers flags, then installs the default logger on stderr
// at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	err := cfg.Install(os.Stderr, verbose)
//
// Logs go to stderr so rendered scan output on stdout stays clean.
package log
