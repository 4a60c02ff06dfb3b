package timer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "focusflow/internal/modules/session/dto"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/ui/views/timer"
)

type fakePort struct {
	stopped []sessiondto.ActiveSession
}

func (f *fakePort) Start(_ context.Context, subject, topic, _, startMood string) (sessiondto.ActiveSession, error) {
	return sessiondto.ActiveSession{ID: "a-1", Subject: subject, Topic: topic, StartMood: startMood, StartedAt: time.Now()}, nil
}

func (f *fakePort) Stop(_ context.Context, active sessiondto.ActiveSession, endMood string, productivity int, _ string) (sessiondto.SessionOutput, error) {
	f.stopped = append(f.stopped, active)
	if active.ID == "" {
		return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return sessiondto.SessionOutput{Subject: active.Subject, EndMood: endMood, Productivity: productivity, Hours: 0.5}, nil
}

func enter(m timer.Model, times int) timer.Model {
	for i := 0; i < times; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return m
}

func TestStartRequiresSubjectAndTopic(t *testing.T) {
	t.Parallel()
	m := enter(timer.New(&fakePort{}, []string{"DSA"}, []string{"Calm"}), 4)
	if !strings.Contains(m.View(), "subject and topic are required") {
		t.Fatalf("expected presence check message, got:\n%s", m.View())
	}
	if _, running := m.Active(); running {
		t.Fatalf("no session should be running")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := timer.New(port, nil, nil)

	started := m.StartCmd("DSA", "Graphs", "", "Calm")()
	m, _ = m.Update(started)
	active, running := m.Active()
	if !running || active.ID != "a-1" {
		t.Fatalf("expected running session, got %+v", active)
	}

	again := m.StartCmd("GATE", "OS", "", "")()
	if msg, ok := again.(timer.StartedMsg); !ok || !errors.Is(msg.Err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %#v", again)
	}

	stopped := m.StopCmd(8, "Happy", "")()
	m, _ = m.Update(stopped)
	if _, running := m.Active(); running {
		t.Fatalf("session should be cleared after stop")
	}
	if len(port.stopped) != 1 || port.stopped[0].ID != "a-1" {
		t.Fatalf("stop should receive the active session, got %+v", port.stopped)
	}

	orphan := m.StopCmd(5, "", "")()
	if msg, ok := orphan.(timer.StoppedMsg); !ok || !errors.Is(msg.Err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %#v", orphan)
	}
}

func TestParseProductivity(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"0", "11", "seven", "", "7.5"} {
		if _, err := timer.ParseProductivity(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	if v, err := timer.ParseProductivity(" 7 "); err != nil || v != 7 {
		t.Fatalf("expected 7, got %d (%v)", v, err)
	}
}
