// SPDX-License-Identifier: MPL-2.0

// Package scaffold declares the stackrun task catalogue: project bootstrap,
// env file handling, the container stack, database and console shortcuts,
// and repository setup. It also renders the stack files project:stack writes.
package scaffold
