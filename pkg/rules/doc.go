// Package rules implements rule discovery, merging and output for crules.
//
// A rule source is a named block of guidance text: the global rules document
// or one language's cursor.<id> file. Sources are resolved from the language
// rules directory and written in one of two layouts:
//
//   - legacy mode: every source concatenated into a single file, global
//     first, language blocks labeled and joined by the configured delimiter
//   - directory mode: one <id><ext> file per source inside a managed
//     directory, each prefixed with YAML front matter
//
// Setup seeds the config directory with bundled defaults. All operations are
// idempotent: running them twice converges to the same files.
//
// Components receive an afero.Fs and a logging.Sink; they never print and
// never exit the process.
package rules
