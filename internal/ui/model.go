// Package ui renders the reconciled ferry state as a terminal clock
// face: one lane per display slot, car-space gauges for both terminals,
// and the fetch status line. The engine polls in the background; the
// view re-reads its snapshot on a short tick so transit and dock
// gauges keep moving between polls.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abw750/ferry-clock/internal/engine"
	"github.com/abw750/ferry-clock/internal/models"
)

// displayTick is how often the view re-reads the engine snapshot.
const displayTick = 5 * time.Second

// Model represents the application's state.
type Model struct {
	eng   *engine.Engine
	route models.RouteSelection

	width  int
	height int

	state  *models.CanonicalState
	status models.FetchStatus

	spinner spinner.Model
}

// NewModel creates the display model around a running engine.
func NewModel(eng *engine.Engine, route models.RouteSelection) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		eng:     eng,
		route:   route,
		spinner: s,
	}
}

// Init starts the display tick and the spinner shown until the first
// cycle lands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.readState(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(displayTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readState pulls the current snapshot off the engine.
func (m Model) readState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: m.eng.State(), status: m.eng.Status()}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.eng.ForcePoll()
			return m, m.readState()
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.readState(), tick())

	case stateMsg:
		m.state = msg.state
		m.status = msg.status
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the clock face.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.route.Description))
	b.WriteString("\n\n")

	if m.state == nil {
		b.WriteString(fmt.Sprintf("%s Waiting for first poll cycle...", m.spinner.View()))
		if m.status.LastError != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("last error: " + m.status.LastError))
		}
		b.WriteString(helpStyle.Render("\n\nr: refresh now • q: quit"))
		return b.String()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	laneWidth := width - 4
	if laneWidth > 72 {
		laneWidth = 72
	}
	if laneWidth < 40 {
		laneWidth = 40
	}

	b.WriteString(m.renderLane(m.state.Slots[0], laneWidth))
	b.WriteString("\n")
	b.WriteString(m.renderLane(m.state.Slots[1], laneWidth))
	b.WriteString("\n")
	b.WriteString(m.renderCapacity(laneWidth))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString(helpStyle.Render("\nr: refresh now • q: quit"))

	return b.String()
}

func (m Model) renderStatusLine() string {
	var parts []string

	parts = append(parts, labelStyle.Render("updated ")+
		valueStyle.Render(m.state.FetchedAt.Format("3:04:05 PM")))

	if m.state.Stale {
		parts = append(parts, staleStyle.Render("STALE"))
	}
	if m.status.LastError != "" {
		parts = append(parts, errorStyle.Render(m.status.LastError))
	}

	return strings.Join(parts, mutedStyle.Render("  •  "))
}
