// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// transientMarkers are substrings of engine errors seen while a daemon or a
// podman machine is still starting.
var transientMarkers = []string{
	"Cannot connect to the Docker daemon",
	"connection refused",
	"connection timed out",
	"ping_group_range",
	"OCI runtime error",
}

// IsTransientError reports whether err is a container engine error that may
// succeed on retry. Context cancellation is never transient.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// 125 is the generic engine failure status of both docker and podman.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 125 {
		return true
	}

	msg := err.Error()
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
