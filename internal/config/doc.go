// Package config loads, normalizes, and validates the scribe configuration
// file. Values come from an optional TOML file with repository defaults
// filled in, plus a small set of environment overrides (OPENAI_API_KEY).
package config
