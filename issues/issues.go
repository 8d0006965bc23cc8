// Package issues creates GitHub issues from scanned annotation comments.
package issues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/towl-sh/towl/comment"
)

var (
	// ErrMissingToken indicates no API token was provided.
	ErrMissingToken = errors.New("missing GitHub token")
	// ErrMissingRepo indicates the owner/repo coordinate is not
	// configured.
	ErrMissingRepo = errors.New("missing GitHub repository")
	// ErrCreateIssue indicates the API rejected an issue creation.
	ErrCreateIssue = errors.New("unable to create issue")
)

// Client creates issues in one GitHub repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewClient builds an authenticated client for owner/repo.
func NewClient(token, owner, repo string) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	if owner == "" || repo == "" {
		return nil, ErrMissingRepo
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{gh: github.NewClient(tc), owner: owner, repo: repo}, nil
}

// CreateFromComments opens one issue per comment and returns the created
// issue URLs, in order. Creation stops at the first API failure; issues
// already created stay open.
func (c *Client) CreateFromComments(ctx context.Context, comments []comment.Comment) ([]string, error) {
	var urls []string

	for _, cm := range comments {
		title := issueTitle(cm)
		body := issueBody(cm)
		labels := []string{strings.ToLower(cm.Type.String())}

		issue, _, err := c.gh.Issues.Create(ctx, c.owner, c.repo, &github.IssueRequest{
			Title:  &title,
			Body:   &body,
			Labels: &labels,
		})
		if err != nil {
			return urls, fmt.Errorf("%w: %s line %d: %w", ErrCreateIssue, cm.FilePath, cm.LineNumber, err)
		}

		slog.Info("created issue", "url", issue.GetHTMLURL(), "file", cm.FilePath, "line", cm.LineNumber)
		urls = append(urls, issue.GetHTMLURL())
	}

	return urls, nil
}

// issueTitle derives a one-line title from the comment.
func issueTitle(cm comment.Comment) string {
	return fmt.Sprintf("[%s] %s", cm.Type, strings.TrimSpace(cm.Description))
}

// issueBody renders the comment's origin and context as markdown.
func issueBody(cm comment.Comment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Created from a %s comment in `%s` (line %d):\n\n", cm.Type, cm.FilePath, cm.LineNumber)
	fmt.Fprintf(&sb, "```\n%s\n```\n", cm.OriginalText)

	if cm.Declaration != "" {
		fmt.Fprintf(&sb, "\nNearest declaration: `%s`\n", cm.Declaration)
	}

	if len(cm.ContextLines) > 0 {
		sb.WriteString("\nContext:\n\n```\n")

		for _, line := range cm.ContextLines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}

		sb.WriteString("```\n")
	}

	return sb.String()
}
