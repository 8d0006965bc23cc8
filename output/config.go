package output

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for output configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Format  string
	Output  string
	Type    string
	Context string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for output configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewOutput] to resolve the formatter
// and sink once at startup.
type Config struct {
	Flags   Flags
	Format  string
	Output  string
	Type    string
	Context bool
}

// NewConfig returns a new [Config] with default flag names.
// Use [Config.RegisterFlags] to add CLI flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		Format:  "format",
		Output:  "output",
		Type:    "type",
		Context: "context",
	}

	return f.NewConfig()
}

// RegisterFlags adds output flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", string(FormatTable),
		fmt.Sprintf("output format, one of: %s", Formats()))
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"output file path (required for file formats)")
	flags.StringVarP(&c.Type, c.Flags.Type, "t", "",
		"only report comments of this type (e.g. todo, fixme)")
	flags.BoolVarP(&c.Context, c.Flags.Context, "c", false,
		"include context lines in terminal and markdown output")
}

// RegisterCompletions registers shell completions for output flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(Formats(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Type,
		cobra.FixedCompletions([]string{"todo", "fixme", "hack", "note", "bug"},
			cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Type, err)
	}

	return nil
}

// NewOutput creates an [Output] using this [Config].
func (c *Config) NewOutput() (*Output, error) {
	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	return New(format, c.Output, WithContext(c.Context))
}
