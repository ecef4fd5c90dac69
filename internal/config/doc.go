// SPDX-License-Identifier: MIT

// Package config loads, normalizes and validates the getmm TOML configuration.
//
// Load starts from Default, decodes the file over it, fills blank values back
// to defaults, expands "~" in paths and validates the result. CLI flags are
// applied by the caller on top of the loaded Config.
package config
