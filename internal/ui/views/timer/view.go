package timer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	sessiondto "focusflow/internal/modules/session/dto"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Start(ctx context.Context, subject, topic, plannedEnd, startMood string) (sessiondto.ActiveSession, error)
	Stop(ctx context.Context, active sessiondto.ActiveSession, endMood string, productivity int, notes string) (sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StartedMsg struct {
	Active sessiondto.ActiveSession
	Err    error
}

// StoppedMsg bubbles up so the app can refresh the other tabs.
type StoppedMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

// TickMsg redraws the elapsed time while a session runs.
type TickMsg time.Time

const (
	fieldSubject = iota
	fieldTopic
	fieldPlannedEnd
	fieldStartMood
)

const (
	fieldEndMood = iota
	fieldProductivity
	fieldNotes
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model owns the in-progress session. It is the only holder of the active
// session; quitting the program discards it.
type Model struct {
	port       Port
	now        func() time.Time
	startForm  []textinput.Model
	stopForm   []textinput.Model
	focus      int
	active     sessiondto.ActiveSession
	running    bool
	last       *sessiondto.SessionOutput
	message    string
	messageBad bool
	width      int
	height     int
}

func New(port Port, subjects, moods []string) Model {
	startForm := []textinput.Model{
		newInput("Subject", subjects),
		newInput("Topic", nil),
		newInput("Planned end (HH:MM, optional)", nil),
		newInput("Starting mood", moods),
	}
	stopForm := []textinput.Model{
		newInput("Ending mood", moods),
		newInput("Productivity 1-10", nil),
		newInput("Notes (optional)", nil),
	}
	startForm[fieldSubject].Focus()
	return Model{port: port, now: time.Now, startForm: startForm, stopForm: stopForm}
}

func newInput(placeholder string, suggestions []string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	if len(suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(suggestions)
	}
	return ti
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Active returns the in-progress session, if any.
func (m Model) Active() (sessiondto.ActiveSession, bool) {
	return m.active, m.running
}

func (m Model) form() []textinput.Model {
	if m.running {
		return m.stopForm
	}
	return m.startForm
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StartedMsg:
		if msg.Err != nil {
			m.setMessage("start failed: "+msg.Err.Error(), true)
			return m, nil
		}
		m.active = msg.Active
		m.running = true
		m.resetForm(m.startForm)
		m.setMessage("session started", false)
		return m, tea.Batch(m.focusField(0), tick())

	case StoppedMsg:
		if msg.Err != nil {
			m.setMessage("stop failed: "+msg.Err.Error(), true)
			return m, nil
		}
		saved := msg.Session
		m.last = &saved
		m.active = sessiondto.ActiveSession{}
		m.running = false
		m.resetForm(m.stopForm)
		m.setMessage(fmt.Sprintf("saved %sh of %s", humanize.FtoaWithDigits(saved.Hours, 2), saved.Subject), false)
		return m, m.focusField(0)

	case TickMsg:
		if m.running {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "shift+up":
			return m, m.focusField((m.focus + len(m.form()) - 1) % len(m.form()))
		case "down":
			return m, m.focusField((m.focus + 1) % len(m.form()))
		case "enter":
			if m.focus < len(m.form())-1 {
				return m, m.focusField(m.focus + 1)
			}
			return m.submit()
		}
	}

	form := m.form()
	var cmd tea.Cmd
	form[m.focus], cmd = form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.running {
		productivity, err := ParseProductivity(m.stopForm[fieldProductivity].Value())
		if err != nil {
			m.setMessage(err.Error(), true)
			return m, m.focusField(fieldProductivity)
		}
		return m, m.StopCmd(productivity, m.stopForm[fieldEndMood].Value(), m.stopForm[fieldNotes].Value())
	}
	subject := strings.TrimSpace(m.startForm[fieldSubject].Value())
	topic := strings.TrimSpace(m.startForm[fieldTopic].Value())
	if subject == "" || topic == "" {
		m.setMessage("subject and topic are required", true)
		if subject == "" {
			return m, m.focusField(fieldSubject)
		}
		return m, m.focusField(fieldTopic)
	}
	return m, m.StartCmd(subject, topic, m.startForm[fieldPlannedEnd].Value(), m.startForm[fieldStartMood].Value())
}

// StartCmd begins a session unless one is already running.
func (m Model) StartCmd(subject, topic, plannedEnd, startMood string) tea.Cmd {
	running := m.running
	return func() tea.Msg {
		if running {
			return StartedMsg{Err: apperrors.ErrActiveSessionExists}
		}
		active, err := m.port.Start(context.Background(), subject, topic, plannedEnd, startMood)
		return StartedMsg{Active: active, Err: err}
	}
}

// StopCmd ends the running session. Without one the call fails with
// ErrNoActiveSession.
func (m Model) StopCmd(productivity int, endMood, notes string) tea.Cmd {
	active := m.active
	return func() tea.Msg {
		out, err := m.port.Stop(context.Background(), active, strings.TrimSpace(endMood), productivity, strings.TrimSpace(notes))
		return StoppedMsg{Session: out, Err: err}
	}
}

// ParseProductivity accepts a whole score from 1 to 10.
func ParseProductivity(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 || v > 10 {
		return 0, fmt.Errorf("productivity must be a whole number from 1 to 10")
	}
	return v, nil
}

func (m Model) View() string {
	var sb strings.Builder
	if m.running {
		a := m.active
		elapsed := m.now().Sub(a.StartedAt)
		sb.WriteString(theme.Hot.Render("● "+a.Subject) + theme.Muted.Render("  "+a.Topic) + "\n\n")
		sb.WriteString(theme.Title.Render(formatElapsed(elapsed)) + theme.Muted.Render("  started "+humanize.Time(a.StartedAt)) + "\n")
		if a.PlannedEndTime != nil {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("planned end %02d:%02d", a.PlannedEndTime.Hour, a.PlannedEndTime.Minute)) + "\n")
		}
		if a.StartMood != "" {
			sb.WriteString(theme.Muted.Render("started feeling "+a.StartMood) + "\n")
		}
		sb.WriteString("\n" + theme.Title.Render("Stop session") + "\n")
		sb.WriteString(renderForm(m.stopForm, m.focus))
	} else {
		sb.WriteString(theme.Title.Render("Start session") + "\n")
		sb.WriteString(renderForm(m.startForm, m.focus))
		if m.last != nil {
			sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("last: %s · %s · %sh · productivity %d",
				m.last.Subject, m.last.Topic, humanize.FtoaWithDigits(m.last.Hours, 2), m.last.Productivity)) + "\n")
		}
	}
	if m.message != "" {
		style := theme.Good
		if m.messageBad {
			style = theme.Bad
		}
		sb.WriteString("\n" + style.Render(m.message) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: field  enter: next / submit  tab: switch tab"))
	return lipgloss.NewStyle().Padding(0, 1).Render(sb.String())
}

func renderForm(inputs []textinput.Model, focus int) string {
	var sb strings.Builder
	for i, in := range inputs {
		style := theme.Pane
		if i == focus {
			style = theme.PaneActive
		}
		sb.WriteString(style.Render(in.View()) + "\n")
	}
	return sb.String()
}

func (m *Model) focusField(i int) tea.Cmd {
	form := m.form()
	for j := range form {
		form[j].Blur()
	}
	m.focus = i
	return form[i].Focus()
}

func (m *Model) resetForm(form []textinput.Model) {
	for i := range form {
		form[i].SetValue("")
	}
}

func (m *Model) setMessage(msg string, bad bool) {
	m.message = msg
	m.messageBad = bad
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	mnt := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, mnt, s)
}
