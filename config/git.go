package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	// ErrNoGitRepo indicates no .git/config was found at or above the
	// starting directory.
	ErrNoGitRepo = errors.New("git repository not found")
	// ErrInvalidRemote indicates the origin remote is missing or its URL
	// is not a GitHub repository.
	ErrInvalidRemote = errors.New("invalid git remote")
)

// RepoInfo is a GitHub repository coordinate.
type RepoInfo struct {
	Owner string
	Repo  string
}

// DetectRepo finds the nearest enclosing git repository, starting at dir and
// walking upward, and extracts the GitHub owner and repository from the
// origin remote URL.
func DetectRepo(dir string) (RepoInfo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("%w: %w", ErrNoGitRepo, err)
	}

	for {
		cfgPath := filepath.Join(abs, ".git", "config")

		_, err := os.Stat(cfgPath)
		if err == nil {
			return repoFromGitConfig(cfgPath)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return RepoInfo{}, fmt.Errorf("%w: starting at %s", ErrNoGitRepo, dir)
		}

		abs = parent
	}
}

// repoFromGitConfig reads the origin remote URL out of a .git/config file.
// The file is INI-shaped with subsectioned names like [remote "origin"].
func repoFromGitConfig(path string) (RepoInfo, error) {
	f, err := ini.Load(path)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("%w: %s: %w", ErrNoGitRepo, path, err)
	}

	section, err := f.GetSection(`remote "origin"`)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("%w: no origin remote", ErrInvalidRemote)
	}

	key, err := section.GetKey("url")
	if err != nil || key.String() == "" {
		return RepoInfo{}, fmt.Errorf("%w: origin remote has no url", ErrInvalidRemote)
	}

	return ParseGitHubURL(key.String())
}

// ParseGitHubURL extracts the owner and repository from a GitHub remote URL
// in either SSH (git@github.com:owner/repo.git) or HTTPS
// (https://github.com/owner/repo.git) form.
func ParseGitHubURL(url string) (RepoInfo, error) {
	url = strings.TrimSpace(url)

	var path string

	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		path = strings.TrimPrefix(url, "git@github.com:")
	case strings.HasPrefix(url, "https://github.com/"):
		path = strings.TrimPrefix(url, "https://github.com/")
	default:
		return RepoInfo{}, fmt.Errorf("%w: %q is not a GitHub repository URL", ErrInvalidRemote, url)
	}

	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoInfo{}, fmt.Errorf("%w: %q", ErrInvalidRemote, url)
	}

	return RepoInfo{Owner: parts[0], Repo: parts[1]}, nil
}
