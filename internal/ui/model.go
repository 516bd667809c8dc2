// Package ui provides the terminal dashboard that drives the rep engine
// from a frame source and displays live rep, score and debug state. It is
// the debug-display collaborator: purely observational over the engine's
// outputs.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/formcoach/internal/exercise"
	"github.com/abelbrown/formcoach/internal/otel"
	"github.com/abelbrown/formcoach/internal/pose"
	"github.com/abelbrown/formcoach/internal/session"
)

// frameInterval paces replay at roughly camera rate.
const frameInterval = 33 * time.Millisecond

// feedbackHold is how long an emitted phrase stays on screen.
const feedbackHold = 3 * time.Second

// frameMsg delivers the next frame from the source.
type frameMsg struct {
	frame *pose.Frame
	err   error
}

// tickMsg paces the frame loop.
type tickMsg time.Time

// RepEvent is forwarded to the optional sink on every completed rep, so
// the cmd layer can persist results without touching the frame path.
type RepEvent struct {
	Time    time.Time
	Score   int
	Issues  []exercise.Issue
	Average float64
}

// Model is the dashboard's bubbletea model.
type Model struct {
	ctrl *session.Controller
	src  *pose.Source
	ring *otel.RingBuffer // optional: nil hides the event tail
	sink func(RepEvent)   // optional: persistence hook

	spin       spinner.Model
	width      int
	height     int
	debug      bool
	eventTail  int
	done       bool
	feedback   string
	feedbackAt time.Time
	pulseAt    time.Time
	lastDebug  *session.DebugInfo
	frames     int
}

// New creates the dashboard. sink may be nil; ring may be nil.
func New(ctrl *session.Controller, src *pose.Source, ring *otel.RingBuffer, eventTail int, sink func(RepEvent)) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)
	if eventTail <= 0 {
		eventTail = 8
	}
	return Model{
		ctrl:      ctrl,
		src:       src,
		ring:      ring,
		sink:      sink,
		spin:      sp,
		eventTail: eventTail,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) readFrame() tea.Cmd {
	return func() tea.Msg {
		f, err := m.src.Next()
		return frameMsg{frame: f, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.ctrl.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Debug):
			m.debug = !m.debug
			m.ctrl.SetDebug(m.debug)
		case key.Matches(msg, keys.PullUp):
			m.ctrl.SetExercise(exercise.KindPullUp)
		case key.Matches(msg, keys.Jump):
			m.ctrl.SetExercise(exercise.KindJump)
		}

	case tickMsg:
		if m.done {
			return m, tick()
		}
		return m, tea.Batch(m.readFrame(), tick())

	case frameMsg:
		if msg.err == io.EOF {
			m.done = true
			return m, nil
		}
		if msg.err != nil {
			m.done = true
			return m, nil
		}
		m.frames++
		out := m.ctrl.ProcessFrame(msg.frame)
		if out.Feedback != "" {
			m.feedback = out.Feedback
			m.feedbackAt = time.Now()
		}
		if out.AudioPulse {
			m.pulseAt = time.Now()
		}
		if out.Debug != nil {
			m.lastDebug = out.Debug
		}
		if out.RepDelta > 0 && m.sink != nil {
			m.sink(RepEvent{
				Time:    time.Now(),
				Score:   out.Score,
				Issues:  out.Issues,
				Average: out.Average,
			})
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	kind := string(m.ctrl.Exercise())
	if kind == "" {
		kind = "none"
	}
	b.WriteString(styleTitle.Render("formcoach"))
	b.WriteString(styleHeader.Render(fmt.Sprintf("  %s · %s · frame %d", kind, m.ctrl.State(), m.frames)))
	b.WriteString("\n\n")

	avg := m.ctrl.Average()
	b.WriteString(fmt.Sprintf("  reps %d   form %s\n", m.ctrl.RepCount(), scoreStyle(avg).Render(fmt.Sprintf("%.0f", avg))))

	if m.calibrating() {
		b.WriteString(fmt.Sprintf("\n  %s calibrating...\n", m.spin.View()))
	}

	if m.feedback != "" && time.Since(m.feedbackAt) < feedbackHold {
		b.WriteString("\n  " + styleFeedback.Render(m.feedback) + "\n")
	}
	if time.Since(m.pulseAt) < 300*time.Millisecond {
		b.WriteString("  " + stylePulse.Render("◉") + "\n")
	}

	if m.debug {
		b.WriteString(m.debugView())
	}

	if m.done {
		b.WriteString("\n  " + styleHeader.Render("frame stream ended") + "\n")
	}

	b.WriteString("\n" + styleHelp.Render("  q quit · d debug · p pull-ups · j jumps"))
	return b.String()
}

func (m Model) calibrating() bool {
	return m.lastDebug != nil && m.lastDebug.Calibration != exercise.Calibrated
}

// debugView renders raw angles and the otel event tail.
func (m Model) debugView() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.lastDebug != nil {
		b.WriteString(styleDebug.Render(fmt.Sprintf("  state=%s calib=%s", m.lastDebug.State, m.lastDebug.Calibration)))
		b.WriteString("\n")
		for joint, deg := range m.lastDebug.Angles {
			b.WriteString(styleDebug.Render(fmt.Sprintf("    %-12s %6.1f°", joint, deg)))
			b.WriteString("\n")
		}
	}

	if m.ring != nil {
		for _, ev := range m.ring.Last(m.eventTail) {
			line := fmt.Sprintf("  %s %-18s %s", ev.Time.Format("15:04:05.000"), ev.Kind, ev.Msg)
			b.WriteString(styleDebug.Render(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Key bindings
var keys = struct {
	Quit   key.Binding
	Debug  key.Binding
	PullUp key.Binding
	Jump   key.Binding
}{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Debug:  key.NewBinding(key.WithKeys("d")),
	PullUp: key.NewBinding(key.WithKeys("p")),
	Jump:   key.NewBinding(key.WithKeys("j")),
}
