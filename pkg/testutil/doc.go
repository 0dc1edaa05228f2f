// Package testutil provides utilities for testing crules components.
//
// Key components:
//   - TestEnvironment: a filesystem with config and project directories laid
//     out the way crules expects, plus a recording diagnostics sink
//   - FileTree: declarative file setup
//   - MockConfirmer: testify mock for overwrite confirmations
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only for code that talks to the
//     real filesystem (config loading, logging)
//   - Define test data inline, not in external files
package testutil
