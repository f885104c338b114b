// Package cli tests the render and check commands.
// Related: internal/cli/render.go, internal/changelog/render.go
// Tags: cli, render, check, markdown

package cli

import (
	"os"
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `project: demo
versions:
  - version: unreleased
    changes:
      added:
        - shiny thing
  - version: 1.0.0
    date: "2024-01-10"
    changes:
      added:
        - first release
      fixed:
        - crash on start
`

func TestRenderCmd(t *testing.T) {
	dir := chdirProject(t)
	writeFile(t, filepath.Join(dir, "CHANGELOG.yaml"), sampleYAML)

	stdout, _, err := runCLI(t, "", "render")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rendered CHANGELOG.yaml")

	md, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "All notable changes to demo")
	assert.Contains(t, string(md), "## [Unreleased]\n\n### Added\n- shiny thing\n")
	assert.Contains(t, string(md), "## [1.0.0] - 2024-01-10\n\n### Added\n- first release\n\n### Fixed\n- crash on start\n")

	// Rendering is deterministic.
	_, _, err = runCLI(t, "", "render")
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Equal(t, string(md), string(again))
}

func TestCheckCmd(t *testing.T) {
	tests := map[string]struct {
		markdown *string
		wantCode int
		wantOut  string
	}{
		"missing markdown": {
			markdown: nil,
			wantCode: ExitValidationFailed,
			wantOut:  "out of sync",
		},
		"stale markdown": {
			markdown: strPtr("# Changelog\n"),
			wantCode: ExitValidationFailed,
			wantOut:  "chlog render",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := chdirProject(t)
			writeFile(t, filepath.Join(dir, "CHANGELOG.yaml"), sampleYAML)
			if tt.markdown != nil {
				writeFile(t, filepath.Join(dir, "CHANGELOG.md"), *tt.markdown)
			}

			stdout, _, err := runCLI(t, "", "check")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, stdout, tt.wantOut)
		})
	}
}

func TestCheckCmd_InSync(t *testing.T) {
	dir := chdirProject(t)
	writeFile(t, filepath.Join(dir, "CHANGELOG.yaml"), sampleYAML)

	_, _, err := runCLI(t, "", "render")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "in sync")
}

func TestRenderCmd_Errors(t *testing.T) {
	tests := map[string]struct {
		yaml    string
		wantErr string
	}{
		"missing changelog": {
			wantErr: "CHANGELOG.yaml not found",
		},
		"invalid version": {
			yaml:    "project: demo\nversions:\n  - version: one\n    date: \"2024-01-10\"\n    changes:\n      added: [x]\n",
			wantErr: "loading CHANGELOG.yaml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := chdirProject(t)
			if tt.yaml != "" {
				writeFile(t, filepath.Join(dir, "CHANGELOG.yaml"), tt.yaml)
			}

			_, _, err := runCLI(t, "", "render")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderCmd_InvalidChangelogRemediation(t *testing.T) {
	dir := chdirProject(t)
	writeFile(t, filepath.Join(dir, "CHANGELOG.yaml"),
		"project: demo\nversions:\n  - version: 1.0.0\n    date: yesterday\n    changes:\n      added: [x]\n")

	_, _, err := runCLI(t, "", "render")
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Configuration, cliErr.Category)
	assert.Contains(t, cliErr.Message, "versions[0].date")
	assert.Contains(t, cliErr.Remediation, "Fix the field named above in CHANGELOG.yaml")
}

func strPtr(s string) *string { return &s }
