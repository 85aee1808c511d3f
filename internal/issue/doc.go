// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError attaches the failed operation, the resource involved and
// remediation hints to an error. Issue guides are Markdown documents rendered
// with glamour when the CLI reports a failure it recognizes.
package issue
