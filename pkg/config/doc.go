// Package config handles configuration management for crules.
//
// Settings are layered with koanf, later layers overriding earlier ones:
//
//  1. built-in path defaults (XDG config directory)
//  2. embedded defaults (embedded/defaults.yaml)
//  3. the persisted settings document (config.yaml or config.toml)
//  4. CRULES_* entries of a .env file in the working directory
//  5. CRULES_* process environment variables
package config
