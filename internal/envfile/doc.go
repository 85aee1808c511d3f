// SPDX-License-Identifier: MPL-2.0

// Package envfile reads and writes the flat KEY=VALUE environment files shared by
// stackrun and the container orchestrator (for example .env.docker).
//
// Parsing is deliberately tolerant: blank lines, '#' comments and lines without an
// '=' are skipped. Values are never interpolated; a '$' stays in the value verbatim
// because the orchestrator performs its own substitution.
package envfile
