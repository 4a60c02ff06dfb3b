package slug_test

import (
	"testing"

	"focusflow/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"2024-01-07 Weekly Report", "2024-01-07-weekly-report"},
		{"  Focus Mode!! ", "focus-mode"},
		{"***", "report"},
	}
	for _, c := range cases {
		if got := slug.Make(c.in, "report"); got != c.want {
			t.Fatalf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
