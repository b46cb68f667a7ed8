package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
	"github.com/vburojevic/deskbell/internal/output"
	"github.com/vburojevic/deskbell/internal/presence"
)

const activityLimit = 500

// Controller is the part of presence.Controller the control surface drives
type Controller interface {
	Dispatch(a domain.Action)
	Snapshot() domain.AppState
}

// ActionDoneMsg is delivered once a dispatched action has been handled
type ActionDoneMsg struct {
	Action domain.Action
	State  domain.AppState
}

// Model is the control surface: current presence state, recent activity and
// the three actions.
type Model struct {
	ctrl    Controller
	events  <-chan tea.Msg
	logPath string
	port    string

	state    domain.AppState
	activity []string
	failures int
	now      func() time.Time

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New creates the TUI model. feed may be nil.
func New(ctrl Controller, feed *Feed, logPath, port string) Model {
	m := Model{
		ctrl:    ctrl,
		logPath: logPath,
		port:    port,
		state:   ctrl.Snapshot(),
		now:     time.Now,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	if feed != nil {
		m.events = feed.ch
	}
	return m
}

// Init starts listening for events
func (m Model) Init() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return waitForEvent(m.events)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.GoAway):
			return m, m.dispatch(domain.ActionGoAway)
		case key.Matches(msg, m.keys.YallOkay):
			return m, m.dispatch(domain.ActionYallOkay)
		case key.Matches(msg, m.keys.Notify):
			return m, m.dispatch(domain.ActionNotify)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(m.width, 1)
			m.ready = true
		}
		m.resize()

	case ActionDoneMsg:
		m.state = msg.State

	case CommandMsg:
		m.state = msg.State
		if msg.Err != nil {
			m.failures++
			if m.failures == 1 {
				// header just grew a row
				m.resize()
			}
		}
		m.addActivity(m.formatCommand(presence.CommandResult(msg)))
		cmds = append(cmds, waitForEvent(m.events))

	case LogLineMsg:
		m.addActivity(output.Styles.Muted.Render(string(msg)))
		cmds = append(cmds, waitForEvent(m.events))
	}

	return m, tea.Batch(cmds...)
}

// dispatch runs the action off the update loop. The controller may block on
// the serial port and its observers feed events back into this loop.
func (m Model) dispatch(a domain.Action) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Dispatch(a)
		return ActionDoneMsg{Action: a, State: ctrl.Snapshot()}
	}
}

func (m *Model) addActivity(line string) {
	m.activity = append(m.activity, line)
	if len(m.activity) > activityLimit {
		m.activity = m.activity[len(m.activity)-activityLimit:]
	}
	if !m.ready {
		return
	}
	follow := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.activity, "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	header := lipgloss.Height(m.renderHeader())
	footer := lipgloss.Height(m.renderFooter())
	h := m.height - header - footer
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.viewport.SetContent(strings.Join(m.activity, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) formatCommand(r presence.CommandResult) string {
	line := output.Styles.Timestamp.Render(m.now().Format("15:04:05")) + " " +
		output.Styles.Command.Render(fmt.Sprintf("%-10s", r.Command.Kind.String()))
	if r.Command.Kind == actuator.KindSetColor {
		line += " " + output.Swatch(r.Command.Color)
	}
	if r.Err != nil {
		line += " " + output.Styles.Danger.Render("failed: "+r.Err.Error())
	}
	return line
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := output.Styles.StatusBar.Width(m.width).Render("deskbell")

	status := string(m.state.LastStatus)
	if status == "" {
		status = "waiting for Teams"
	}
	port := m.port
	if port == "" {
		port = "dry run"
	}

	rows := []string{
		output.Styles.Label.Render("Mode     ") + output.ModeText(m.state.Mode),
		output.Styles.Label.Render("Showing  ") + output.Swatch(m.state.Displayed()),
		output.Styles.Label.Render("Teams    ") + output.Styles.Value.Render(status) +
			output.Styles.Muted.Render("  (last color "+m.state.LastColor.String()+")"),
		output.Styles.Label.Render("Log      ") + m.logPath,
		output.Styles.Label.Render("Port     ") + port,
	}
	if m.failures > 0 {
		rows = append(rows, output.Styles.Label.Render("Failed   ")+
			output.Styles.Danger.Render(fmt.Sprintf("%d commands", m.failures)))
	}
	return title + "\n" + output.Styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) renderFooter() string {
	return output.Styles.Help.Width(m.width).Render(m.help.View(m.keys))
}
