// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is layered: built-in defaults, then config.cue from the platform
// config directory (~/.config/pubpages on Linux, ~/Library/Application Support/pubpages
// on macOS, %APPDATA%\pubpages on Windows) or an explicit --config file, then
// PUBPAGES_* environment variables (PUBPAGES_RETRY_MAX_ATTEMPTS for retry.max_attempts).
//
// Config files are validated against the embedded #Config schema (config_schema.cue)
// before they are merged.
package config
