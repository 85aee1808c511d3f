// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for stackrun.
//
// Every task of the catalogue becomes a top-level command named by its
// namespace:name identifier. The root command also carries list, run and
// config.
package cmd
