package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/towl-sh/towl/scan"
)

// DefaultPath is where the configuration file lives unless overridden.
const DefaultPath = ".towl.toml"

// envPrefix namespaces the environment layer, e.g. TOWL_GITHUB_TOKEN.
const envPrefix = "TOWL"

var (
	// ErrInvalidConfig indicates the layered configuration could not be
	// read or merged.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrPathTraversal indicates a config path containing a
	// parent-directory marker.
	ErrPathTraversal = errors.New("path traversal is not supported")
	// ErrConfigExists indicates Init would overwrite an existing file.
	ErrConfigExists = errors.New("configuration file already exists")
	// ErrWriteConfig indicates the configuration file could not be
	// written.
	ErrWriteConfig = errors.New("unable to write configuration")
)

// Config is the full towl configuration.
type Config struct {
	Parsing ParsingConfig `mapstructure:"parsing" toml:"parsing" yaml:"parsing"`
	Output  OutputConfig  `mapstructure:"output"  toml:"output"  yaml:"output"`
	GitHub  GitHubConfig  `mapstructure:"github"  toml:"github"  yaml:"github"`
}

// ParsingConfig controls what the scanner matches. All pattern lists are
// ordered; matching respects configuration order.
type ParsingConfig struct {
	FileExtensions      []string `mapstructure:"file_extensions"       toml:"file_extensions"       yaml:"file_extensions"`
	ExcludePatterns     []string `mapstructure:"exclude_patterns"      toml:"exclude_patterns"      yaml:"exclude_patterns"`
	IncludeContextLines int      `mapstructure:"include_context_lines" toml:"include_context_lines" yaml:"include_context_lines"`
	CommentPrefixes     []string `mapstructure:"comment_prefixes"      toml:"comment_prefixes"      yaml:"comment_prefixes"`
	TodoPatterns        []string `mapstructure:"todo_patterns"         toml:"todo_patterns"         yaml:"todo_patterns"`
	FunctionPatterns    []string `mapstructure:"function_patterns"     toml:"function_patterns"     yaml:"function_patterns"`
}

// OutputConfig controls reporting behavior.
type OutputConfig struct {
	Verbose bool `mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
}

// GitHubConfig identifies the repository used by the issues command. The
// token never round-trips through the config file; it is read from the
// TOWL_GITHUB_TOKEN environment variable.
type GitHubConfig struct {
	Token string `mapstructure:"token" toml:"-"     yaml:"-"`
	Owner string `mapstructure:"owner" toml:"owner" yaml:"owner"`
	Repo  string `mapstructure:"repo"  toml:"repo"  yaml:"repo"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Parsing: ParsingConfig{
			FileExtensions:      []string{"go", "rs", "py", "js", "ts", "sh", "toml", "yaml", "yml"},
			ExcludePatterns:     []string{".git/*", "target/*", "vendor/*", "node_modules/*"},
			IncludeContextLines: 3,
			CommentPrefixes:     []string{`//`, `^\s*#`, `/\*`, `^\s*\*`},
			TodoPatterns: []string{
				`(?i)\bTODO:?\s*(.*)`,
				`(?i)\bFIXME:?\s*(.*)`,
				`(?i)\bHACK:?\s*(.*)`,
				`(?i)\bNOTE:?\s*(.*)`,
				`(?i)\bBUG:?\s*(.*)`,
			},
			FunctionPatterns: []string{
				`^\s*func\s+(?:\([^)]*\)\s*)?(\w+)`,
				`^\s*(?:pub\s+)?fn\s+(\w+)`,
				`^\s*def\s+(\w+)`,
				`^\s*(?:export\s+)?function\s+(\w+)`,
			},
		},
		GitHub: GitHubConfig{
			Owner: "no owner",
			Repo:  "no repo",
		},
	}
}

// Load builds the layered configuration: defaults, then the file at path
// (or [DefaultPath] when path is empty) if it exists, then TOWL_-prefixed
// environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	err := validatePath(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")

	setDefaults(v)

	_, err = os.Stat(path)
	if err == nil {
		v.SetConfigFile(path)

		err = v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// setDefaults registers every key so the environment layer can override it
// even when the file layer is absent.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("parsing.file_extensions", def.Parsing.FileExtensions)
	v.SetDefault("parsing.exclude_patterns", def.Parsing.ExcludePatterns)
	v.SetDefault("parsing.include_context_lines", def.Parsing.IncludeContextLines)
	v.SetDefault("parsing.comment_prefixes", def.Parsing.CommentPrefixes)
	v.SetDefault("parsing.todo_patterns", def.Parsing.TodoPatterns)
	v.SetDefault("parsing.function_patterns", def.Parsing.FunctionPatterns)
	v.SetDefault("output.verbose", def.Output.Verbose)
	v.SetDefault("github.token", def.GitHub.Token)
	v.SetDefault("github.owner", def.GitHub.Owner)
	v.SetDefault("github.repo", def.GitHub.Repo)
}

// Init writes a default configuration file to path, autodetecting the
// GitHub owner and repository from the nearest .git/config. An existing
// file is preserved unless force is set.
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultPath
	}

	err := validatePath(path)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	cfg := Default()

	info, err := DetectRepo(".")
	if err == nil {
		cfg.GitHub.Owner = info.Owner
		cfg.GitHub.Repo = info.Repo
	}

	return cfg.Save(path)
}

// Save writes the configuration to path as TOML. The GitHub token is never
// persisted.
func (c Config) Save(path string) error {
	err := validatePath(path)
	if err != nil {
		return err
	}

	out, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteConfig, err)
	}

	err = os.WriteFile(path, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteConfig, path, err)
	}

	return nil
}

// ScanOptions maps the parsing configuration onto the scanner's options.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{
		FileExtensions:      c.Parsing.FileExtensions,
		ExcludePatterns:     c.Parsing.ExcludePatterns,
		ContextLines:        c.Parsing.IncludeContextLines,
		CommentPrefixes:     c.Parsing.CommentPrefixes,
		MarkerPatterns:      c.Parsing.TodoPatterns,
		DeclarationPatterns: c.Parsing.FunctionPatterns,
	}
}

// Validate checks that every configured pattern family compiles.
func (c Config) Validate() error {
	_, err := scan.NewParser(c.ScanOptions())

	return err
}

func validatePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}

	return nil
}
