package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abw750/ferry-clock/internal/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func testState() *models.CanonicalState {
	eta := "10:35 AM"
	arr := "10:36 AM"
	avail := 120
	total := 197

	return &models.CanonicalState{
		Route: models.RouteSelection{Description: "Seattle / Bainbridge Island"},
		Slots: [2]*models.SlotState{
			{
				Vessel:          "Tacoma",
				Phase:           models.PhaseUnderway,
				Direction:       "Bainbridge Island → Seattle",
				DepartureLabel:  "10:00 AM",
				ActualDeparture: strPtr("10:00 AM"),
				ETA:             &eta,
				TransitFraction: floatPtr(0.57),
			},
			{
				Vessel:         "Wenatchee",
				Phase:          models.PhaseDocked,
				Direction:      "Seattle → Bainbridge Island",
				DepartureLabel: "10:45 AM",
				Arrival:        &arr,
				DockFraction:   floatPtr(0.25),
			},
		},
		CapacityWest: models.TerminalCapacity{Available: &avail, Total: &total, Fresh: true},
		CapacityEast: models.TerminalCapacity{},
		FetchedAt:    time.Date(2026, 3, 10, 10, 20, 0, 0, time.UTC),
	}
}

func testModel() Model {
	m := NewModel(nil, models.RouteSelection{
		Description: "Seattle / Bainbridge Island",
		LabelWest:   "BI",
		LabelEast:   "SEA",
	})
	m.state = testState()
	return m
}

func TestViewWaitingBeforeFirstCycle(t *testing.T) {
	m := NewModel(nil, models.RouteSelection{Description: "Seattle / Bainbridge Island"})

	out := m.View()
	if !strings.Contains(out, "Waiting for first poll cycle") {
		t.Errorf("waiting view missing placeholder:\n%s", out)
	}
}

func TestViewRendersBothLanes(t *testing.T) {
	out := testModel().View()

	for _, want := range []string{
		"Tacoma", "UNDERWAY", "10:35 AM",
		"Wenatchee", "AT DOCK", "10:36 AM",
		"120 / 197 spaces",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(out, "no data") {
		t.Error("empty capacity side must read as no data, not zero")
	}
}

func TestViewFlagsStaleState(t *testing.T) {
	m := testModel()
	m.state.Stale = true

	if !strings.Contains(m.View(), "STALE") {
		t.Error("stale snapshot not flagged")
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	m := testModel()

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		if key == "q" && cmd == nil {
			t.Errorf("key %q did not produce a command", key)
		}
	}
}

func TestGaugeBounds(t *testing.T) {
	// Out-of-range fractions clamp instead of panicking or overflowing.
	for _, f := range []float64{-0.5, 0, 0.5, 1, 1.5} {
		out := gauge(f, "#", "test")
		if out == "" {
			t.Errorf("gauge(%v) empty", f)
		}
	}
	if !strings.Contains(gauge(1, "#", "crossing"), "100%") {
		t.Error("full gauge must read 100%")
	}
}
