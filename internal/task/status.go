// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
)

// StatusPort is a stack service published on a host port read from the env file.
type StatusPort struct {
	Key   string
	Label string
}

// StatusPorts are the services StatusURLs reports, in output order.
var StatusPorts = []StatusPort{
	{Key: "APP_PORT", Label: "Application"},
	{Key: "PHPMYADMIN_PORT", Label: "phpMyAdmin"},
	{Key: "ADMINER_PORT", Label: "Adminer"},
	{Key: "MAILPIT_HTTP_PORT", Label: "Mailpit"},
}

type statusStep struct{}

// StatusURLs reports the local URL of every service whose port is set in the
// env file. Services with an empty or missing port are skipped. The env file
// is loaded first when no earlier step did.
func StatusURLs() Step { return statusStep{} }

func (statusStep) Run(_ context.Context, x *Execution) error {
	env := x.Env()
	if env == nil {
		var err error
		if env, err = x.LoadEnv(); err != nil {
			return err
		}
	}
	for _, p := range StatusMessages(env.Map()) {
		x.Out().Success(p)
	}
	return nil
}

func (statusStep) String() string { return "status urls" }

// StatusMessages returns one message per service with a non-empty port.
func StatusMessages(env map[string]string) []string {
	var out []string
	for _, p := range StatusPorts {
		port := env[p.Key]
		if port == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s is available at http://localhost:%s", p.Label, port))
	}
	return out
}
