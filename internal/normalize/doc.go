// Package normalize cleans changelog entries parsed from commit messages and
// drops the ones that would render as empty or repeated bullets.
//
// Each changelog generation run owns one Session. The host pipeline calls
// Session.Process once per commit, in whatever order it walks history:
//   - the subject is resolved from the parsed entry, then the commit body,
//     then the commit header (see Resolve)
//   - trailing pull request references like "(#123)" are stripped
//   - entries whose (type, scope, lowercased subject) was already admitted
//     during the run are dropped
//
// A Session is never reset. Start a new one for every run.
package normalize
