// Package git reads commit history for changelog generation. It uses the
// go-git library so no git CLI is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Commit is a single commit as seen by the changelog builder.
type Commit struct {
	Hash   string
	Author string
	When   time.Time
	// Text is the full raw commit message, header line included.
	Text string
	// BodyText is everything after the header line, without leading blank lines.
	BodyText string
}

// Body returns the commit body, or "" when the commit has none.
func (c Commit) Body() string { return c.BodyText }

// Message returns the full commit message.
func (c Commit) Message() string { return c.Text }

// ShortHash returns the abbreviated commit hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// RangeOptions selects the commits to collect.
type RangeOptions struct {
	// RepoPath is any path inside the repository. Empty means the working directory.
	RepoPath string
	// From excludes every commit reachable from this revision. Empty collects
	// the full history.
	From string
	// To is the newest revision to include. Defaults to HEAD.
	To string
	// SkipMerges drops commits with more than one parent.
	SkipMerges bool
}

// openRepo opens a git repository at the specified path or current working directory.
// DetectDotGit lets callers pass any path inside the work tree.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsGitRepository reports whether path is inside a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", path, result)
	return result
}

// CollectCommits returns the commits in the selected range, newest first.
// The context is checked between commits so long histories can be cancelled.
func CollectCommits(ctx context.Context, opts RangeOptions) ([]Commit, error) {
	repo, err := openRepo(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	to := opts.To
	if to == "" {
		to = "HEAD"
	}
	toHash, err := resolve(repo, to)
	if err != nil {
		return nil, err
	}

	excluded, err := reachableFrom(ctx, repo, opts.From)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: toHash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		if opts.SkipMerges && c.NumParents() > 1 {
			logDebug("[git] skipping merge commit %s", c.Hash.String()[:7])
			return nil
		}
		commits = append(commits, toCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits %s..%s: %w", opts.From, to, err)
	}

	logDebug("[git] CollectCommits %s..%s: %d commits", opts.From, to, len(commits))
	return commits, nil
}

// reachableFrom returns the set of commits reachable from rev, or an empty
// set when rev is empty.
func reachableFrom(ctx context.Context, repo *git.Repository, rev string) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})
	if rev == "" {
		return seen, nil
	}

	hash, err := resolve(repo, rev)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", rev, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits reachable from %s: %w", rev, err)
	}
	return seen, nil
}

func resolve(repo *git.Repository, rev string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return *hash, nil
}

func toCommit(c *object.Commit) Commit {
	_, body := SplitMessage(c.Message)
	return Commit{
		Hash:     c.Hash.String(),
		Author:   c.Author.Name,
		When:     c.Author.When,
		Text:     c.Message,
		BodyText: body,
	}
}

// SplitMessage separates a raw commit message into its header line and body.
// Leading blank lines of the body and trailing whitespace are removed.
func SplitMessage(message string) (header, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	header, body, _ = strings.Cut(message, "\n")
	body = strings.TrimLeft(body, "\n")
	return strings.TrimSpace(header), strings.TrimRight(body, " \t\n")
}

// LatestTag returns the name of the tag pointing at the most recent commit,
// or "" if the repository has no tags.
func LatestTag(repoPath string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	var (
		latest     string
		latestTime time.Time
	)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		commit, err := tagCommit(repo, ref)
		if err != nil {
			logDebug("[git] ignoring tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		when := commit.Committer.When
		if latest == "" || when.After(latestTime) {
			latest = ref.Name().Short()
			latestTime = when
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] LatestTag: %q", latest)
	return latest, nil
}

// tagCommit peels lightweight and annotated tags down to their commit.
func tagCommit(repo *git.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	tag, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return repo.CommitObject(ref.Hash())
	default:
		return nil, err
	}
}
