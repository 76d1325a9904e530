// Package config loads, normalizes, and validates dialogedit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DIALOGEDIT_LOG_LEVEL. The Config type centralizes every knob the editor and
// the CLI need so display, persistence, and logging choices are resolved in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
