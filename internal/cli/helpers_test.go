package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// runCLI executes rootCmd with args and returns what it wrote. Flags are reset
// to their defaults first since command state is package-level.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// chdirProject runs the test from an empty directory with no user config.
func chdirProject(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

var commitBase = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// initRepo creates a repository in dir with one commit per message, oldest
// first.
func initRepo(t *testing.T, dir string, messages ...string) *git.Repository {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for _, msg := range messages {
		commitTo(t, repo, dir, msg)
	}
	return repo
}

// commitTo records msg as a new commit, one minute after the previous one.
func commitTo(t *testing.T, repo *git.Repository, dir, msg string) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commitBase = commitBase.Add(time.Minute)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(commitBase.String()+"\n"+msg), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(t, err)
	_, err = wt.Commit(msg, &git.CommitOptions{Author: &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  commitBase,
	}})
	require.NoError(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
