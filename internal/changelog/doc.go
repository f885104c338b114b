// Package changelog assembles and renders Keep a Changelog documents.
//
// This package implements:
//   - CHANGELOG.yaml parsing, validation and writing
//   - Building a release section from git commits through an injected
//     normalize.MessageBuilderHook
//   - Markdown rendering following Keep a Changelog format
//   - Colored terminal output for the show and generate commands
//
// CHANGELOG.yaml is the source of truth; CHANGELOG.md is rendered from it.
package changelog
