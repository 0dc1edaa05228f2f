// Package core implements the crules commands on top of pkg/rules.
//
// Every command takes an Env carrying the filesystem, the loaded
// configuration and the user-facing collaborators, and returns one of the
// pkg/ui/display result types. Paths from the configuration that are
// relative (the legacy output, the managed directory, the ignore file) are
// resolved against Env.WorkDir.
//
// # Output modes
//
// Legacy mode concatenates the global rules and every requested language
// into a single file. Directory mode writes one file per source into the
// managed rules directory. The configuration picks the mode; commands may
// override it per run.
//
// # Missing sources
//
// When the global rules file or the language directory is absent the
// commands suggest running setup, which seeds both from the templates
// bundled with the binary.
package core
