// SPDX-License-Identifier: MPL-2.0

// Package process spawns the external tools stackrun orchestrates (composer,
// docker/podman compose, the framework console, git).
//
// Every invocation is synchronous and inherits the caller's standard streams.
// A non-zero exit status is reported as a value, not as an error; errors are
// reserved for processes that could not be started at all.
package process
