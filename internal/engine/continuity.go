package engine

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
)

// prevLive is the slice of a vessel's live record carried between
// cycles: just enough to notice the vessel vanishing mid-crossing.
type prevLive struct {
	LeftDock *time.Time
	ETA      *time.Time
}

// ContinuityTracker watches for vessels that were underway last cycle
// and are absent from the live feed this cycle. The WSDOT positions
// endpoint routinely drops a vessel for the last minute or two of a
// crossing, so a disappearance at or just before the expected arrival
// is treated as the arrival itself.
type ContinuityTracker struct {
	prev      map[string]prevLive
	pending   map[string]time.Time // vessel -> expected arrival, set on disappearance
	synthetic map[string]time.Time
	crossing  time.Duration
}

// NewContinuityTracker builds a tracker using the route's nominal
// crossing duration as the arrival estimate when no ETA was seen.
func NewContinuityTracker(crossing time.Duration) *ContinuityTracker {
	if crossing <= 0 {
		crossing = 35 * time.Minute
	}
	return &ContinuityTracker{
		prev:      make(map[string]prevLive),
		pending:   make(map[string]time.Time),
		synthetic: make(map[string]time.Time),
		crossing:  crossing,
	}
}

// Advance folds one cycle's live index and returns the synthetic
// arrivals currently in effect, keyed by vessel name, plus the vessels
// whose entry was created this cycle. A synthetic entry is created at
// most once per disappearance and cleared the moment the vessel shows
// up underway again, so a later crossing is never masked by a stale
// arrival.
func (t *ContinuityTracker) Advance(live models.LiveIndex, now time.Time) (map[string]time.Time, []string) {
	for name, pos := range live.ByVessel {
		delete(t.pending, name)
		if pos.LeftDock != nil {
			delete(t.synthetic, name)
		}
	}

	for name, prev := range t.prev {
		if _, still := live.ByVessel[name]; still {
			continue
		}
		if prev.LeftDock == nil {
			continue
		}
		if _, already := t.pending[name]; already {
			continue
		}

		expected := prev.LeftDock.Add(t.crossing)
		if prev.ETA != nil {
			expected = *prev.ETA
		}
		t.pending[name] = expected
	}

	// Arm a minute early; the feed tends to drop the vessel just before
	// it ties up.
	var armed []string
	for name, expected := range t.pending {
		if _, exists := t.synthetic[name]; !exists && !now.Before(expected.Add(-time.Minute)) {
			t.synthetic[name] = now
			delete(t.pending, name)
			armed = append(armed, name)
		}
	}

	t.prev = make(map[string]prevLive, len(live.ByVessel))
	for name, pos := range live.ByVessel {
		t.prev[name] = prevLive{LeftDock: pos.LeftDock, ETA: pos.ETA}
	}

	out := make(map[string]time.Time, len(t.synthetic))
	for name, at := range t.synthetic {
		out[name] = at
	}
	return out, armed
}
