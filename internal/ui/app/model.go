package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "focusflow/internal/modules/analytics/dto"
	goaldto "focusflow/internal/modules/goal/dto"
	sessiondto "focusflow/internal/modules/session/dto"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
	dashboardview "focusflow/internal/ui/views/dashboard"
	goalsview "focusflow/internal/ui/views/goals"
	timerview "focusflow/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Start(ctx context.Context, subject, topic, plannedEnd, startMood string) (sessiondto.ActiveSession, error)
	Stop(ctx context.Context, active sessiondto.ActiveSession, endMood string, productivity int, notes string) (sessiondto.SessionOutput, error)
}

type analyticsPort interface {
	Dashboard(ctx context.Context, today time.Time) (analyticsdto.DashboardOutput, error)
	ExportReport(ctx context.Context, today time.Time) (analyticsdto.ReportOutput, error)
}

type goalPort interface {
	Progress(ctx context.Context, today time.Time, window string) ([]goaldto.ProgressOutput, error)
	Set(ctx context.Context, subject string, target float64) ([]goaldto.Goal, error)
	Remove(ctx context.Context, subject string) ([]goaldto.Goal, error)
	Reset(ctx context.Context) ([]goaldto.Goal, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabGoals
	tabTimer
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Goals", "Timer",
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Report  key.Binding
	Window  key.Binding
	Reset   key.Binding
	Timer   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Report:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export report")),
		Window:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "goal window")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset goals")),
		Timer:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Timer, k.Refresh},
		{k.Report, k.Window, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs the command
// palette and keeps the other tabs fresh after a session is saved.
type Model struct {
	dashView  dashboardview.Model
	goalView  goalsview.Model
	timerView timerview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(session sessionPort, analytics analyticsPort, goals goalPort, subjects, moods []string) Model {
	return Model{
		dashView:  dashboardview.New(analytics),
		goalView:  goalsview.New(goals),
		timerView: timerview.New(session, subjects, moods),
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.goalView.Init(),
		m.timerView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case dashboardview.LoadedMsg:
		if msg.Err != nil {
			m.status = "dashboard: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case dashboardview.ReportExportedMsg:
		if msg.Err != nil {
			m.status = "report failed: " + msg.Err.Error()
		} else {
			m.status = "report written to " + msg.Report.Path
		}
		return m, nil

	case goalsview.LoadedMsg:
		var cmd tea.Cmd
		m.goalView, cmd = m.goalView.Update(msg)
		return m, cmd

	case goalsview.ChangedMsg:
		if msg.Err != nil {
			m.status = "goals: " + msg.Err.Error()
			return m, nil
		}
		m.status = msg.Action
		return m, m.goalView.Reload()

	case timerview.StartedMsg:
		if msg.Err == nil {
			m.status = "session started: " + msg.Active.Subject
			m.activeTab = tabTimer
		} else if errors.Is(msg.Err, apperrors.ErrActiveSessionExists) {
			m.status = "a session is already running; stop it first"
		}
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.StoppedMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		if msg.Err != nil {
			if errors.Is(msg.Err, apperrors.ErrNoActiveSession) {
				m.status = "no session is running"
			}
			return m, cmd
		}
		m.status = fmt.Sprintf("session saved: %s %.2fh", msg.Session.Subject, msg.Session.Hours)
		return m, tea.Batch(cmd, m.dashView.Reload(), m.goalView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}

		// The timer forms take every other key as text.
		if m.activeTab != tabTimer {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			case "t":
				m.activeTab = tabTimer
				return m, nil
			}
		} else if msg.String() == "esc" {
			m.activeTab = tabDashboard
			return m, nil
		}
	}

	// Input goes to the active tab. Other messages reach every view so
	// background tabs keep ticking.
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		switch m.activeTab {
		case tabDashboard:
			m.dashView, cmd = m.dashView.Update(msg)
		case tabGoals:
			m.goalView, cmd = m.goalView.Update(msg)
		case tabTimer:
			m.timerView, cmd = m.timerView.Update(msg)
		}
		return m, cmd
	}
	var dashCmd, goalCmd, timerCmd tea.Cmd
	m.dashView, dashCmd = m.dashView.Update(msg)
	m.goalView, goalCmd = m.goalView.Update(msg)
	m.timerView, timerCmd = m.timerView.Update(msg)
	return m, tea.Batch(dashCmd, goalCmd, timerCmd)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabGoals:
		return m.goalView.View()
	case tabTimer:
		return m.timerView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusflow  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if active, ok := m.timerView.Active(); ok {
		left = theme.Hot.Render("● "+active.Subject) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	if m.activeTab == tabTimer {
		right = theme.Muted.Render("esc:dashboard  tab:switch  ctrl+c:quit")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "start":
		subject, topic, ok := strings.Cut(rest, "/")
		subject, topic = strings.TrimSpace(subject), strings.TrimSpace(topic)
		if !ok || subject == "" || topic == "" {
			m.status = "usage: start <subject> / <topic>"
			return m, nil
		}
		return m, m.timerView.StartCmd(subject, topic, "", "")

	case "stop":
		if len(parts) < 2 {
			m.status = "usage: stop <productivity> [end mood]"
			return m, nil
		}
		productivity, err := timerview.ParseProductivity(parts[1])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		endMood := strings.TrimSpace(strings.TrimPrefix(rest, parts[1]))
		return m, m.timerView.StopCmd(productivity, endMood, "")

	case "goal":
		if len(parts) < 3 {
			m.status = "usage: goal <subject> <hours>"
			return m, nil
		}
		target, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil {
			m.status = "invalid hours: " + parts[len(parts)-1]
			return m, nil
		}
		subject := strings.Join(parts[1:len(parts)-1], " ")
		m.activeTab = tabGoals
		return m, m.goalView.SetCmd(subject, target)

	case "goal:remove":
		if rest == "" {
			m.status = "usage: goal:remove <subject>"
			return m, nil
		}
		m.activeTab = tabGoals
		return m, m.goalView.RemoveCmd(rest)

	case "goals:reset":
		m.activeTab = tabGoals
		return m, m.goalView.ResetCmd()

	case "window":
		if rest != "all" && rest != "week" {
			m.status = "usage: window <all|week>"
			return m, nil
		}
		m.activeTab = tabGoals
		return m, m.goalView.SetWindow(rest)

	case "report":
		return m, m.dashView.ExportReport()

	case "refresh":
		m.status = "refreshing"
		return m, tea.Batch(m.dashView.Reload(), m.goalView.Reload())

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.dashView, _ = m.dashView.Update(sz)
	m.goalView, _ = m.goalView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
}
