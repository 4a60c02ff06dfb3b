package markdown_test

import (
	"strings"
	"testing"

	"focusflow/internal/platform/markdown"
)

type reportMeta struct {
	Kind  string  `yaml:"kind"`
	Hours float64 `yaml:"hours"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(reportMeta{Kind: "weekly", Hours: 7.5}, "# Week\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nkind: weekly\n") {
		t.Fatalf("unexpected header: %s", rendered)
	}
	var meta reportMeta
	body, err := markdown.SplitFrontmatter(rendered, &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta.Kind != "weekly" || meta.Hours != 7.5 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if strings.TrimSpace(body) != "# Week" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	var meta reportMeta
	body, err := markdown.SplitFrontmatter("plain text", &meta)
	if err != nil || body != "plain text" || meta.Kind != "" {
		t.Fatalf("unexpected result body=%q meta=%+v err=%v", body, meta, err)
	}
	if _, err := markdown.SplitFrontmatter("---\nkind: x\n", &meta); err == nil {
		t.Fatalf("unterminated frontmatter should fail")
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	fresh := markdown.ReplaceManagedBlock("", start, end, "one")
	if fresh != start+"\none\n"+end+"\n" {
		t.Fatalf("unexpected fresh block %q", fresh)
	}
	withNotes := "## Reflection\nkept\n" + fresh
	replaced := markdown.ReplaceManagedBlock(withNotes, start, end, "two\n")
	if !strings.Contains(replaced, "kept") || strings.Contains(replaced, "one") || !strings.Contains(replaced, start+"\ntwo\n"+end) {
		t.Fatalf("unexpected replacement %q", replaced)
	}
	appended := markdown.ReplaceManagedBlock("notes", start, end, "x")
	if appended != "notes\n\n"+start+"\nx\n"+end+"\n" {
		t.Fatalf("unexpected append %q", appended)
	}
}
