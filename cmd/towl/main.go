// Command towl scans source trees for annotation comments (TODO, FIXME,
// HACK, NOTE, BUG), reports them in several formats, and can turn them into
// GitHub issues.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/towl-sh/towl/comment"
	"github.com/towl-sh/towl/config"
	"github.com/towl-sh/towl/issues"
	"github.com/towl-sh/towl/log"
	"github.com/towl-sh/towl/output"
	"github.com/towl-sh/towl/profile"
	"github.com/towl-sh/towl/scan"
	"github.com/towl-sh/towl/version"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// rootFlags holds flags shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
	log        *log.Config
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{log: log.NewConfig()}

	rootCmd := &cobra.Command{
		Use:   "towl",
		Short: "Scan source trees for TODO comments",
		Long: `towl scans your codebase for annotation comments (TODO, FIXME, HACK, NOTE,
BUG), reports them grouped by type, and can convert them into GitHub issues.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "p", "",
		fmt.Sprintf("config file path (default %s)", config.DefaultPath))
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")
	flags.log.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := flags.log.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		newScanCmd(flags),
		newInitCmd(flags),
		newConfigCmd(flags),
		newIssuesCmd(flags),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads the layered configuration and installs the default logger.
func setup(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	err = flags.log.Install(os.Stderr, flags.verbose || cfg.Output.Verbose)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func newScanCmd(flags *rootFlags) *cobra.Command {
	outCfg := output.NewConfig()
	profCfg := profile.NewConfig()

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan for TODO comments in the codebase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}

			// Resolve the output and type filter up front so a bad
			// format/path pairing is rejected before any scanning.
			out, err := outCfg.NewOutput()
			if err != nil {
				return err
			}

			if outCfg.Type != "" {
				_, err = comment.ParseTypeName(outCfg.Type)
				if err != nil {
					return err
				}
			}

			prof := profCfg.NewProfiler()

			err = prof.Start()
			if err != nil {
				return err
			}

			defer func() {
				stopErr := prof.Stop()
				if stopErr != nil {
					slog.Error("stopping profiler", "err", stopErr)
				}
			}()

			scanner, err := scan.New(cfg.ScanOptions())
			if err != nil {
				return err
			}

			comments, err := scanner.Scan(scanRoot(args))
			if err != nil {
				return err
			}

			comments, err = output.FilterType(comments, outCfg.Type)
			if err != nil {
				return err
			}

			return out.Write(comments)
		},
	}

	outCfg.RegisterFlags(cmd.Flags())
	profCfg.RegisterFlags(cmd.Flags())

	completionErr := outCfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new .towl.toml configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := flags.configPath
			if path == "" {
				path = config.DefaultPath
			}

			err := config.Init(path, force)
			if err != nil {
				return err
			}

			fmt.Printf("Initialized config file at: %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var (
		all      bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective towl configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}

			if validate {
				err = cfg.Validate()
				if err != nil {
					return err
				}

				fmt.Println("configuration is valid")
			}

			var doc any = cfg
			if !all {
				doc = struct {
					Parsing config.ParsingConfig `yaml:"parsing"`
					Output  config.OutputConfig  `yaml:"output"`
				}{cfg.Parsing, cfg.Output}
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			fmt.Print(string(out))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include the github section")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the configured patterns")

	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON schema for the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling schema: %w", err)
			}

			fmt.Println(string(out))

			return nil
		},
	}
}

func newIssuesCmd(flags *rootFlags) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "issues [path]",
		Short: "Create GitHub issues from TODO comments",
		Long: `issues scans the given path and opens one GitHub issue per comment found.
The API token is read from the TOWL_GITHUB_TOKEN environment variable; the
repository comes from the github section of the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}

			client, err := issues.NewClient(cfg.GitHub.Token, repoValue(cfg.GitHub.Owner), repoValue(cfg.GitHub.Repo))
			if err != nil {
				return err
			}

			scanner, err := scan.New(cfg.ScanOptions())
			if err != nil {
				return err
			}

			comments, err := scanner.Scan(scanRoot(args))
			if err != nil {
				return err
			}

			comments, err = output.FilterType(comments, typeFilter)
			if err != nil {
				return err
			}

			urls, err := client.CreateFromComments(cmd.Context(), comments)
			if err != nil {
				return err
			}

			fmt.Printf("Created %d issue%s\n", len(urls), plural(len(urls)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "only create issues for this comment type")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	}
}

// scanRoot returns the positional scan root, defaulting to the current
// directory.
func scanRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return "."
}

// repoValue maps the "no owner"/"no repo" placeholders written by init back
// to empty strings so the issues client reports them as missing.
func repoValue(s string) string {
	if s == "no owner" || s == "no repo" {
		return ""
	}

	return s
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
