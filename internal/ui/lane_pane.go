package ui

import (
	"fmt"
	"strings"

	"github.com/abw750/ferry-clock/internal/models"
)

const gaugeWidth = 30

// renderLane renders one display slot: vessel, phase, times, and the
// transit or dock gauge.
func (m Model) renderLane(slot *models.SlotState, width int) string {
	var content strings.Builder

	if slot == nil {
		content.WriteString(mutedStyle.Render("No vessel"))
		return paneStyle.Width(width).Render(content.String())
	}

	content.WriteString(valueStyle.Bold(true).Render(slot.Vessel))
	switch slot.Phase {
	case models.PhaseUnderway:
		content.WriteString("  " + underwayStyle.Render("UNDERWAY"))
	case models.PhaseDocked:
		content.WriteString("  " + dockedStyle.Render("AT DOCK"))
	}
	content.WriteString("\n")

	if slot.Direction != "" {
		content.WriteString(mutedStyle.Render(slot.Direction))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Departs: "))
	content.WriteString(valueStyle.Render(orDash(slot.DepartureLabel)))
	if slot.ActualDeparture != nil {
		content.WriteString(mutedStyle.Render(" (actual)"))
	}
	content.WriteString("\n")

	switch slot.Phase {
	case models.PhaseUnderway:
		content.WriteString(labelStyle.Render("ETA:     "))
		content.WriteString(valueStyle.Render(orDashPtr(slot.ETA)))
		content.WriteString("\n")
		if slot.TransitFraction != nil {
			content.WriteString("\n")
			content.WriteString(gauge(*slot.TransitFraction, underwayStyle.Render("▐"), "crossing"))
		}
	case models.PhaseDocked:
		content.WriteString(labelStyle.Render("Arrived: "))
		content.WriteString(valueStyle.Render(orDashPtr(slot.Arrival)))
		if slot.DockStartSynthetic {
			content.WriteString(mutedStyle.Render(" (approx)"))
		}
		content.WriteString("\n")
		if slot.DockFraction != nil {
			content.WriteString("\n")
			content.WriteString(gauge(*slot.DockFraction, dockedStyle.Render("▐"), "at dock"))
		}
	default:
		content.WriteString(labelStyle.Render("ETA:     "))
		content.WriteString(valueStyle.Render(orDashPtr(slot.ETA)))
		content.WriteString("\n")
	}

	return paneStyle.Width(width).Render(content.String())
}

// renderCapacity renders both terminals' drive-up space in one pane.
func (m Model) renderCapacity(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Car Space"))
	content.WriteString("\n\n")
	content.WriteString(capacityLine(m.route.LabelWest, m.state.CapacityWest))
	content.WriteString("\n")
	content.WriteString(capacityLine(m.route.LabelEast, m.state.CapacityEast))

	return paneStyle.Width(width).Render(content.String())
}

func capacityLine(label string, c models.TerminalCapacity) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(fmt.Sprintf("%-4s ", label)))
	if c.Available == nil {
		b.WriteString(mutedStyle.Render("no data"))
		return b.String()
	}

	if c.Total != nil && *c.Total > 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d spaces", *c.Available, *c.Total)))
	} else {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d spaces", *c.Available)))
	}
	if !c.Fresh {
		b.WriteString(staleStyle.Render(" (held)"))
	}
	return b.String()
}

// gauge draws a fixed-width progress bar with a caption.
func gauge(fraction float64, fill, caption string) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(gaugeWidth) + 0.5)

	var b strings.Builder
	for i := 0; i < gaugeWidth; i++ {
		if i < filled {
			b.WriteString(fill)
		} else {
			b.WriteString(mutedStyle.Render("░"))
		}
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" %3.0f%% %s", fraction*100, caption)))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func orDashPtr(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
