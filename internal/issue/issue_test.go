// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesOrderedAndComplete(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != 6 {
		t.Fatalf("len(Values()) = %d, want 6", len(all))
	}
	for i, is := range all {
		if want := Id(i + 1); is.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), want)
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", is.Id())
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	is := Get(EnvFileNotFoundId)
	if is == nil {
		t.Fatal("Get(EnvFileNotFoundId) = nil")
	}
	if !strings.Contains(string(is.MarkdownMsg()), "stackrun env:init") {
		t.Error("env file guide does not mention env:init")
	}
	if Get(Id(999)) != nil {
		t.Error("Get(999) != nil")
	}
}

func TestExtLinksIsCopy(t *testing.T) {
	t.Parallel()

	is := Get(ContainerEngineNotFoundId)
	links := is.ExtLinks()
	if len(links) == 0 {
		t.Fatal("no external links")
	}
	links[0] = "mutated"
	if is.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() exposes internal slice")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Get(ToolNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Tool not installed", "getcomposer.org"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}
