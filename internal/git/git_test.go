package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// testRepo is a throwaway repository with deterministic commit times.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  baseTime.Add(time.Duration(r.n) * time.Minute),
	}
}

func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	r.n++

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(message), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{Author: r.signature()})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash, annotated bool) {
	r.t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{Tagger: r.signature(), Message: "release " + name}
	}
	_, err := r.repo.CreateTag(name, hash, opts)
	require.NoError(r.t, err)
}

func messages(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Text
	}
	return out
}

func TestCollectCommits_FullHistory(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: first")
	r.commit("fix(api): second\n\n- body line")

	commits, err := CollectCommits(context.Background(), RangeOptions{RepoPath: r.dir})
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, []string{"fix(api): second\n\n- body line", "feat: first"}, messages(commits))
	assert.Equal(t, "- body line", commits[0].Body())
	assert.Equal(t, "", commits[1].Body())
	assert.Equal(t, "Test User", commits[0].Author)
	assert.Len(t, commits[0].ShortHash(), 7)
}

func TestCollectCommits_Range(t *testing.T) {
	r := newTestRepo(t)
	first := r.commit("feat: first")
	r.tag("v0.1.0", first, true)
	r.commit("feat: second")
	third := r.commit("fix: third")
	r.commit("chore: fourth")

	commits, err := CollectCommits(context.Background(), RangeOptions{
		RepoPath: r.dir,
		From:     "v0.1.0",
		To:       third.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"fix: third", "feat: second"}, messages(commits))
}

func TestResolve(t *testing.T) {
	r := newTestRepo(t)
	first := r.commit("feat: first")
	r.tag("v0.1.0", first, false)
	second := r.commit("feat: second")

	tests := map[string]struct {
		rev  string
		want plumbing.Hash
	}{
		"head":        {rev: "HEAD", want: second},
		"parent":      {rev: "HEAD~1", want: first},
		"tag":         {rev: "v0.1.0", want: first},
		"full hash":   {rev: second.String(), want: second},
		"branch name": {rev: "master", want: second},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := resolve(r.repo, tt.rev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := resolve(r.repo, "missing")
	require.Error(t, err)
	assert.Equal(t, plumbing.ZeroHash, got)
}

func TestCollectCommits_SubdirectoryPath(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: first")

	sub := filepath.Join(r.dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	commits, err := CollectCommits(context.Background(), RangeOptions{RepoPath: sub})
	require.NoError(t, err)
	assert.Len(t, commits, 1)
}

func TestCollectCommits_Errors(t *testing.T) {
	tests := map[string]struct {
		opts func(dir string) RangeOptions
	}{
		"not a repository": {
			opts: func(string) RangeOptions { return RangeOptions{RepoPath: t.TempDir()} },
		},
		"unknown from revision": {
			opts: func(dir string) RangeOptions { return RangeOptions{RepoPath: dir, From: "v9.9.9"} },
		},
		"unknown to revision": {
			opts: func(dir string) RangeOptions { return RangeOptions{RepoPath: dir, To: "nope"} },
		},
	}

	r := newTestRepo(t)
	r.commit("feat: first")

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := CollectCommits(context.Background(), tt.opts(r.dir))
			assert.Error(t, err)
		})
	}
}

func TestCollectCommits_CancelledContext(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CollectCommits(ctx, RangeOptions{RepoPath: r.dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatestTag(t *testing.T) {
	r := newTestRepo(t)
	first := r.commit("feat: first")
	r.tag("v0.1.0", first, false)
	second := r.commit("feat: second")
	r.tag("v0.2.0", second, true)
	r.commit("feat: third")

	tag, err := LatestTag(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", tag)
}

func TestLatestTag_NoTags(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: first")

	tag, err := LatestTag(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "", tag)
}

func TestIsGitRepository(t *testing.T) {
	r := newTestRepo(t)
	assert.True(t, IsGitRepository(r.dir))
	assert.False(t, IsGitRepository(t.TempDir()))
}

func TestSplitMessage(t *testing.T) {
	tests := map[string]struct {
		message    string
		wantHeader string
		wantBody   string
	}{
		"header only":        {message: "feat: x\n", wantHeader: "feat: x", wantBody: ""},
		"header and body":    {message: "feat: x\n\n- one\n- two\n", wantHeader: "feat: x", wantBody: "- one\n- two"},
		"crlf line endings":  {message: "fix: y\r\n\r\nbody\r\n", wantHeader: "fix: y", wantBody: "body"},
		"body without blank": {message: "fix: y\nbody", wantHeader: "fix: y", wantBody: "body"},
		"empty message":      {message: "", wantHeader: "", wantBody: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			header, body := SplitMessage(tt.message)
			assert.Equal(t, tt.wantHeader, header)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, format)
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	IsGitRepository(t.TempDir())
	assert.NotEmpty(t, lines)
}
