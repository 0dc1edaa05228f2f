// Package filesystem provides the filesystem used by crules.
//
// Everything goes through an afero.Fs so the rule resolver and writers run
// against the OS in production and against an in-memory filesystem in
// tests. The helpers here add whole-file replace semantics and
// metadata-preserving copies on top of afero.
package filesystem
