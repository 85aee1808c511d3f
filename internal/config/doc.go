// SPDX-License-Identifier: MPL-2.0

// Package config loads stackrun.cue, the per-project settings file.
//
// Values are layered with viper: built-in defaults, then the CUE file
// (validated against the embedded #Config schema), then STACKRUN_* environment
// variables. Command-line flags are applied on top by the CLI.
package config
