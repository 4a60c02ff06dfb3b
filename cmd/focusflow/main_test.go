package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLogThenStats(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, "", "--data", dir, "log", "--subject", "DSA", "--topic", "Trees", "--hours", "1.5", "--productivity", "8", "--date", "2024-01-03")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "logged DSA / Trees 1.5h on 2024-01-03") {
		t.Fatalf("unexpected log output %q", out)
	}

	out, err = run(t, "", "--data", dir, "stats", "--date", "2024-01-03")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "DSA") || !strings.Contains(out, "100.0%") {
		t.Fatalf("unexpected stats output %q", out)
	}

	out, err = run(t, "", "--data", dir, "session", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "2024-01-03\tDSA\tTrees") {
		t.Fatalf("unexpected list output %q", out)
	}
}

func TestLogRequiresSubjectAndTopic(t *testing.T) {
	t.Parallel()
	_, err := run(t, "", "--data", t.TempDir(), "log", "--subject", "DSA", "--hours", "1")
	if err == nil || !strings.Contains(err.Error(), "--subject and --topic are required") {
		t.Fatalf("expected presence error, got %v", err)
	}
}

func TestSessionStartStopsOnEnter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, "\nabc\n7\nCalm\nfocused\n", "--data", dir, "session", "start", "--subject", "GATE", "--topic", "Graphs")
	if err != nil {
		t.Fatalf("session start: %v", err)
	}
	if !strings.Contains(out, "productivity must be a whole number") {
		t.Fatalf("expected productivity retry, got %q", out)
	}
	if !strings.Contains(out, "session saved: GATE / Graphs") || !strings.Contains(out, "productivity=7") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, "", "--data", dir, "session", "list", "--subject", "gate")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "GATE\tGraphs") {
		t.Fatalf("stopped session not logged: %q", out)
	}
}

func TestSessionStartSavesWhenOptionalAnswersAreMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, "\n9\n", "--data", dir, "session", "start", "--subject", "DS", "--topic", "Bayes")
	if err != nil {
		t.Fatalf("session start: %v", err)
	}
	if !strings.Contains(out, "session saved: DS / Bayes") || !strings.Contains(out, "productivity=9") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = run(t, "", "--data", dir, "session", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "DS\tBayes") {
		t.Fatalf("stopped session not logged: %q", out)
	}
}

func TestSessionStartFailsWhenInputEndsBeforeProductivity(t *testing.T) {
	t.Parallel()
	_, err := run(t, "\n", "--data", t.TempDir(), "session", "start", "--subject", "DS", "--topic", "Bayes")
	if err == nil || !strings.Contains(err.Error(), "read input") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestGoalsSetAndProgress(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, "", "--data", dir, "goals", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "DSA\t10h") || !strings.Contains(out, "GATE\t12h") {
		t.Fatalf("expected default goals, got %q", out)
	}

	if _, err := run(t, "", "--data", dir, "goals", "set", "--subject", "DSA", "--target", "4"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := run(t, "", "--data", dir, "log", "--subject", "DSA", "--topic", "Heaps", "--hours", "2", "--date", "2024-01-03"); err != nil {
		t.Fatalf("log: %v", err)
	}
	out, err = run(t, "", "--data", dir, "goals", "progress", "--date", "2024-01-03")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !strings.Contains(out, "50.0%") {
		t.Fatalf("expected 50%% progress for DSA, got %q", out)
	}
}

func TestSessionClearNeedsConfirmation(t *testing.T) {
	t.Parallel()
	_, err := run(t, "", "--data", t.TempDir(), "session", "clear")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
}
