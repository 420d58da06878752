// Package config handles configuration management for dotlink.
// It layers embedded TOML defaults, the user's config file, DOTLINK_*
// environment variables and command-line overrides using koanf.
package config
