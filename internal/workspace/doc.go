// SPDX-License-Identifier: MPL-2.0

// Package workspace implements the filesystem capability tasks use, rooted at
// the project directory and backed by spf13/afero so tests run on memory.
// Changes stay inside the root; reads may reach above it. The dry-run
// variant layers a memory filesystem over the project and prints each change.
package workspace
