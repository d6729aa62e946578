package engine

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/progress"
)

// builder turns a selected row plus its dock history into the slot
// view the renderer consumes. The anchors (dock start, arrival, labels)
// are fixed at poll time; the fractions are time-derived and recomputed
// by refresh on every read so the dials keep moving between polls.
type builder struct {
	route    models.RouteSelection
	loc      *time.Location
	crossing time.Duration
}

func (b *builder) slotState(obs *models.VesselObservation, ds *models.VesselDockState, live models.LiveIndex, eta *string, now time.Time) *models.SlotState {
	if obs == nil {
		return nil
	}

	s := &models.SlotState{
		Vessel:                obs.Vessel,
		Status:                obs.Status,
		Direction:             obs.Direction,
		OriginTerminalID:      obs.OriginTerminalID,
		DestinationTerminalID: obs.DestinationTerminalID,
		ScheduledDeparture:    obs.ScheduledDeparture,
		ActualDeparture:       obs.ActualDeparture,
		DepartureLabel:        obs.DepartureLabel,
		ETA:                   eta,
	}

	atDock := false
	if pos, ok := live.ByVessel[obs.Vessel]; ok {
		atDock = pos.AtDock
	}

	switch {
	case obs.Status == models.StatusInTransit:
		s.Phase = models.PhaseUnderway
	case atDock:
		s.Phase = models.PhaseDocked
	case ds != nil && !ds.Underway && ds.DockStart != nil:
		s.Phase = models.PhaseDocked
	}

	if ds != nil && ds.Arrival != nil {
		label := ds.Arrival.In(b.loc).Format("3:04 PM")
		s.Arrival = &label
	} else if obs.ActualArrival != nil {
		s.Arrival = obs.ActualArrival
	}

	if ds != nil && ds.DockStart != nil {
		t := *ds.DockStart
		s.DockStart = &t
		s.DockStartSynthetic = ds.DockStartSynthetic
	}

	// Boot path: the vessel is already tied up when the process starts,
	// so no transition was ever observed. Approximate the dock start
	// from the scheduled departure and the nominal dwell.
	if s.DockStart == nil && s.Phase == models.PhaseDocked {
		dep := b.departureInstant(obs, now)
		if dep != nil {
			t := dep.Add(-progress.DefaultDwell)
			s.DockStart = &t
			s.DockStartSynthetic = true
		}
	}

	b.refresh(s, now)
	return s
}

// refresh recomputes the time-derived fractions against now. Anything
// anchored at poll time is left alone.
func (b *builder) refresh(s *models.SlotState, now time.Time) {
	if s == nil {
		return
	}
	s.DockFraction = nil
	s.TransitFraction = nil

	switch s.Phase {
	case models.PhaseDocked:
		if s.DockStart == nil {
			return
		}
		dep := progress.NextOccurrence(s.ScheduledDeparture, now, b.loc)
		if dep != nil && dep.After(*s.DockStart) {
			s.DockFraction = progress.DockFraction(s.DockStart, *dep, now)
			return
		}
		// No usable departure anchor; gauge fills over the display cap.
		elapsed := now.Sub(*s.DockStart)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > progress.MaxDisplayDwell {
			elapsed = progress.MaxDisplayDwell
		}
		f := float64(elapsed) / float64(progress.MaxDisplayDwell)
		s.DockFraction = &f

	case models.PhaseUnderway:
		start := s.ScheduledDeparture
		if s.ActualDeparture != nil {
			start = *s.ActualDeparture
		}
		if s.ETA != nil {
			s.TransitFraction = progress.Transit(start, *s.ETA, now, b.loc)
		}
		if s.TransitFraction == nil {
			// No ETA: pace the bar against the nominal crossing.
			dep := progress.PrevOccurrence(start, now, b.loc)
			if dep != nil && b.crossing > 0 {
				f := progress.Clamp01(float64(now.Sub(*dep)) / float64(b.crossing))
				s.TransitFraction = &f
			}
		}
	}
}

// departureInstant resolves the row's scheduled departure to a concrete
// instant, preferring the feed's own parse.
func (b *builder) departureInstant(obs *models.VesselObservation, now time.Time) *time.Time {
	if obs.ScheduledDepartureAt != nil {
		return obs.ScheduledDepartureAt
	}
	return progress.NextOccurrence(obs.ScheduledDeparture, now, b.loc)
}

func cloneSlot(s *models.SlotState) *models.SlotState {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
