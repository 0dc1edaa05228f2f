// Package paths provides centralized path handling for crules.
//
// It resolves the XDG locations crules reads from and writes to:
//
//   - Config: $XDG_CONFIG_HOME/Cursor/cursor-rules (global rules, language
//     rules, persisted settings)
//   - State: $XDG_STATE_HOME/crules (log file)
//
// # Environment Variables
//
//   - CRULES_CONFIG_DIR: Override the config directory
//
// The project-relative names (.cursorrules, .cursor/rules, .gitignore) are
// defaults only; the effective values come from pkg/config.
package paths
