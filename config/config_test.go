package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towl-sh/towl/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), ".towl.toml"))
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.Parsing, cfg.Parsing)
	assert.Equal(t, "no owner", cfg.GitHub.Owner)
	assert.Equal(t, "no repo", cfg.GitHub.Repo)
	assert.Empty(t, cfg.GitHub.Token)
	assert.False(t, cfg.Output.Verbose)
}

func TestLoadFileLayer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".towl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[parsing]
file_extensions = ["rs"]
include_context_lines = 5

[output]
verbose = true

[github]
owner = "towl-sh"
repo = "towl"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"rs"}, cfg.Parsing.FileExtensions)
	assert.Equal(t, 5, cfg.Parsing.IncludeContextLines)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "towl-sh", cfg.GitHub.Owner)
	assert.Equal(t, "towl", cfg.GitHub.Repo)

	// Keys the file does not set keep their defaults.
	assert.Equal(t, config.Default().Parsing.TodoPatterns, cfg.Parsing.TodoPatterns)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".towl.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadEnvLayer(t *testing.T) {
	t.Setenv("TOWL_GITHUB_TOKEN", "ghp_testtoken")

	cfg, err := config.Load(filepath.Join(t.TempDir(), ".towl.toml"))
	require.NoError(t, err)

	assert.Equal(t, "ghp_testtoken", cfg.GitHub.Token)
}

func TestLoadRejectsTraversal(t *testing.T) {
	t.Parallel()

	_, err := config.Load("../outside/.towl.toml")
	require.ErrorIs(t, err, config.ErrPathTraversal)
}

func TestSaveOmitsToken(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".towl.toml")

	cfg := config.Default()
	cfg.GitHub.Token = "ghp_secret"
	require.NoError(t, cfg.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.NotContains(t, content, "ghp_secret")
	assert.NotContains(t, content, "token")
	assert.Contains(t, content, "file_extensions")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".towl.toml")

	want := config.Default()
	want.Parsing.IncludeContextLines = 7
	want.GitHub.Owner = "towl-sh"
	require.NoError(t, want.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, got.Parsing.IncludeContextLines)
	assert.Equal(t, "towl-sh", got.GitHub.Owner)
	assert.Equal(t, want.Parsing.TodoPatterns, got.Parsing.TodoPatterns)
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".towl.toml")

	require.NoError(t, config.Init(path, false))
	assert.FileExists(t, path)

	err := config.Init(path, false)
	require.ErrorIs(t, err, config.ErrConfigExists)

	require.NoError(t, config.Init(path, true))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, config.Default().Validate())
	})

	t.Run("bad marker pattern", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.Parsing.TodoPatterns = []string{"[invalid"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad prefix pattern", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.Parsing.CommentPrefixes = []string{"("}
		assert.Error(t, cfg.Validate())
	})
}

func TestScanOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	opts := cfg.ScanOptions()

	assert.Equal(t, cfg.Parsing.FileExtensions, opts.FileExtensions)
	assert.Equal(t, cfg.Parsing.ExcludePatterns, opts.ExcludePatterns)
	assert.Equal(t, cfg.Parsing.IncludeContextLines, opts.ContextLines)
	assert.Equal(t, cfg.Parsing.CommentPrefixes, opts.CommentPrefixes)
	assert.Equal(t, cfg.Parsing.TodoPatterns, opts.MarkerPatterns)
	assert.Equal(t, cfg.Parsing.FunctionPatterns, opts.DeclarationPatterns)
}
