// SPDX-License-Identifier: MPL-2.0

// Package container provides a unified abstraction over the container engines
// (Docker/Podman) that run the project stack.
//
// Engines do not run anything on behalf of tasks: Compose and Command build
// process.Command values that the task dispatcher hands to its Runner, so
// dry-run and test runners see the exact command lines. Engines only execute
// their own probes (Available, Version).
//
// Engine selection uses NewEngine(EngineType) with automatic fallback to the
// other engine if the preferred one is unavailable.
package container
