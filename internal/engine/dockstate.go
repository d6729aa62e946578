package engine

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
)

// realArrivalSlack is how far a reported arrival may drift from the one
// already on record before it replaces it.
const realArrivalSlack = 30 * time.Second

// DockTracker maintains the per-vessel dock history across cycles. It
// is the only writer of VesselDockState records.
type DockTracker struct {
	byVessel map[string]*models.VesselDockState
}

// NewDockTracker returns an empty tracker.
func NewDockTracker() *DockTracker {
	return &DockTracker{byVessel: make(map[string]*models.VesselDockState)}
}

// Get returns the vessel's current dock state, or nil when the vessel
// has never been seen.
func (t *DockTracker) Get(vessel string) *models.VesselDockState {
	return t.byVessel[vessel]
}

// Update folds one cycle into the tracker. The transition rule: a
// vessel that was underway last cycle and is not underway now has just
// docked, so the current instant stamps both arrival and dock start,
// the latter marked synthetic. A feed-reported arrival then refines the
// record: it replaces an arrival differing by more than thirty seconds,
// and snaps a synthetic or later dock start back to the true instant.
// Synthesized arrivals only fill gaps; they never displace a real
// value or clear the synthetic flag.
func (t *DockTracker) Update(rows []models.VesselObservation, live models.LiveIndex, real, synthesized map[string]time.Time, now time.Time) {
	names := make(map[string]bool)
	for i := range rows {
		if v := rows[i].Vessel; v != "" {
			names[v] = true
		}
	}
	for v := range live.ByVessel {
		if v != "" {
			names[v] = true
		}
	}
	for v := range real {
		if v != "" {
			names[v] = true
		}
	}
	for v := range synthesized {
		if v != "" {
			names[v] = true
		}
	}

	for name := range names {
		var row *models.VesselObservation
		for i := range rows {
			if rows[i].Vessel == name {
				row = &rows[i]
				break
			}
		}

		underway := row.Underway()
		if pos, ok := live.ByVessel[name]; ok && pos.LeftDock != nil {
			underway = true
		}

		prev := t.byVessel[name]
		if prev == nil {
			prev = &models.VesselDockState{}
			t.byVessel[name] = prev
		}

		// Departing closes the dock cycle; the anchors must not leak
		// into the next one.
		if !prev.Underway && underway {
			prev.Arrival = nil
			prev.DockStart = nil
			prev.DockStartSynthetic = false
		}

		if prev.Underway && !underway && !prev.LastSeen.IsZero() {
			if prev.Arrival == nil {
				at := now
				prev.Arrival = &at
			}
			if prev.DockStart == nil {
				at := now
				prev.DockStart = &at
				prev.DockStartSynthetic = true
			}
		}

		if arr, ok := synthesized[name]; ok {
			if prev.Arrival == nil {
				a := arr
				prev.Arrival = &a
			}
			if prev.DockStart == nil {
				a := arr
				prev.DockStart = &a
				prev.DockStartSynthetic = true
			}
		}

		if arr, ok := real[name]; ok {
			if prev.Arrival == nil || absDuration(arr.Sub(*prev.Arrival)) > realArrivalSlack {
				a := arr
				prev.Arrival = &a
			}
			if prev.DockStart == nil || prev.DockStartSynthetic || arr.Before(*prev.DockStart) {
				a := arr
				prev.DockStart = &a
				prev.DockStartSynthetic = false
			}
		}

		prev.LastSeen = now
		prev.Underway = underway
		if underway {
			at := now
			prev.LastSeenUnderway = &at
		}
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
