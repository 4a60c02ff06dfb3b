package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	goaldto "focusflow/internal/modules/goal/dto"
	"focusflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Progress(ctx context.Context, today time.Time, window string) ([]goaldto.ProgressOutput, error)
	Set(ctx context.Context, subject string, target float64) ([]goaldto.Goal, error)
	Remove(ctx context.Context, subject string) ([]goaldto.Goal, error)
	Reset(ctx context.Context) ([]goaldto.Goal, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Window   string
	Progress []goaldto.ProgressOutput
	Err      error
}

// ChangedMsg reports a goal edit; the app shows it and reloads.
type ChangedMsg struct {
	Action string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	window   string
	progress []goaldto.ProgressOutput
	bar      progress.Model
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	bar.Width = 40
	return Model{port: port, window: "week", bar: bar}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Window() string { return m.window }

// SetWindow switches between "all" and "week" and reloads.
func (m *Model) SetWindow(window string) tea.Cmd {
	m.window = window
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(60, msg.Width-40))

	case LoadedMsg:
		if msg.Window != m.window {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err == nil {
			m.progress = msg.Progress
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "w":
			if m.window == "week" {
				return m, m.SetWindow("all")
			}
			return m, m.SetWindow("week")
		case "r":
			return m, m.Reload()
		case "R":
			return m, m.ResetCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	label := "this week"
	if m.window == "all" {
		label = "all time"
	}
	sb.WriteString(theme.Title.Render("Goals") + theme.Muted.Render("  progress "+label) + "\n\n")

	if m.err != nil {
		sb.WriteString(theme.Bad.Render("goals: "+m.err.Error()) + "\n")
	}
	if len(m.progress) == 0 && m.err == nil {
		sb.WriteString(theme.Muted.Render("No goals configured.") + "\n")
	}
	for _, p := range m.progress {
		status := theme.Muted
		switch {
		case p.Percent >= 100:
			status = theme.Good
		case p.Percent >= 50:
			status = theme.Warn
		}
		sb.WriteString(fmt.Sprintf("%-14s %s %s\n",
			p.Subject,
			m.bar.ViewAs(p.Percent/100),
			status.Render(fmt.Sprintf("%sh / %sh", humanize.FtoaWithDigits(p.Actual, 2), humanize.FtoaWithDigits(p.Target, 2)))))
	}

	sb.WriteString("\n" + theme.Muted.Render("w: toggle week/all  r: refresh  R: reset to defaults  :goal <subject> <hours>"))
	return lipgloss.NewStyle().Padding(0, 1).Render(sb.String())
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) Reload() tea.Cmd {
	window := m.window
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Window: window, Err: fmt.Errorf("goals not configured")}
		}
		out, err := m.port.Progress(context.Background(), time.Time{}, window)
		return LoadedMsg{Window: window, Progress: out, Err: err}
	}
}

func (m Model) SetCmd(subject string, target float64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Set(context.Background(), subject, target)
		return ChangedMsg{Action: fmt.Sprintf("goal %s set to %sh", subject, humanize.FtoaWithDigits(target, 2)), Err: err}
	}
}

func (m Model) RemoveCmd(subject string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Remove(context.Background(), subject)
		return ChangedMsg{Action: "goal " + subject + " removed", Err: err}
	}
}

func (m Model) ResetCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Reset(context.Background())
		return ChangedMsg{Action: "goals reset to defaults", Err: err}
	}
}
