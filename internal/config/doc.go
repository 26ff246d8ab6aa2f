// SPDX-License-Identifier: MPL-2.0

// Package config handles depconf configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/depconf/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/depconf/config.cue on macOS,
// %APPDATA%\depconf\config.cue on Windows), falling back to ./depconf.cue. Values are
// validated against the embedded CUE schema (config_schema.cue) before they are merged
// over the defaults, and DEPCONF_* environment variables override both.
package config
