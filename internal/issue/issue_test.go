// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalog_AllIdsRegistered(t *testing.T) {
	t.Parallel()

	for id := ToolNotFoundId; id <= PlatformNotSupportedId; id++ {
		entry := Get(id)
		if entry == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if entry.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, entry.Id())
		}
		if strings.TrimSpace(string(entry.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}

	if got, want := len(Values()), int(PlatformNotSupportedId); got != want {
		t.Errorf("len(Values()) = %d, want %d", got, want)
	}
}

func TestIssue_MarkdownIncludesLinks(t *testing.T) {
	t.Parallel()

	md := Get(InvalidCropExpressionId).Markdown()
	if !strings.Contains(md, "## See also") {
		t.Errorf("Markdown() missing see-also section:\n%s", md)
	}
	if !strings.Contains(md, "imagemagick.org") {
		t.Errorf("Markdown() missing doc link:\n%s", md)
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	t.Parallel()

	entry := Get(ToolNotFoundId)
	links := entry.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected external links")
	}
	links[0] = "mutated"
	if entry.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() must return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(DeviceMountedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "mounted") {
		t.Errorf("Render() output missing body text:\n%s", out)
	}
}
