package engine

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/progress"
	"github.com/abw750/ferry-clock/internal/sticky"
)

// rowSelector fills the two display slots from the cycle's rows, the
// stable slot map, and the dock snapshot cache.
type rowSelector struct {
	snaps *sticky.DockSnapshotCache
	loc   *time.Location
}

// Select resolves each slot in a fixed preference order: the mapped
// vessel's live row, then its dock snapshot, then the earliest upcoming
// sailing not already shown in the other slot, then any leftover row.
// Whatever happens, the two slots never resolve to the same vessel; an
// empty slot beats a duplicate.
func (s *rowSelector) Select(rows []models.VesselObservation, slots [2]string, now time.Time) [2]*models.VesselObservation {
	var out [2]*models.VesselObservation

	for i := 0; i < 2; i++ {
		if slots[i] != "" {
			out[i] = bestRowForVessel(rows, slots[i], now, s.loc)
		}
	}
	for i := 0; i < 2; i++ {
		if out[i] == nil && slots[i] != "" {
			out[i] = s.snaps.Get(slots[i]).AsObservation()
		}
	}

	if out[0] == nil {
		out[0] = earliestUpcoming(rows, vesselOf(out[1]), now, s.loc)
	}
	if out[1] == nil {
		out[1] = earliestUpcoming(rows, vesselOf(out[0]), now, s.loc)
	}

	if out[0] == nil && len(rows) > 0 && rows[0].Vessel != vesselOf(out[1]) {
		out[0] = &rows[0]
	}
	if out[1] == nil && len(rows) > 1 && rows[1].Vessel != vesselOf(out[0]) {
		out[1] = &rows[1]
	}

	if out[0] != nil && out[1] != nil && out[0].Vessel != "" && out[0].Vessel == out[1].Vessel {
		dup := out[0].Vessel
		out[1] = earliestUpcoming(rows, dup, now, s.loc)
		if out[1] == nil {
			for _, v := range slots {
				if v != "" && v != dup {
					out[1] = s.snaps.Get(v).AsObservation()
					break
				}
			}
		}
	}

	return out
}

func vesselOf(o *models.VesselObservation) string {
	if o == nil {
		return ""
	}
	return o.Vessel
}

// bestRowForVessel picks the vessel's in-transit row if it has one,
// else its soonest upcoming departure.
func bestRowForVessel(rows []models.VesselObservation, vessel string, now time.Time, loc *time.Location) *models.VesselObservation {
	var subset []*models.VesselObservation
	for i := range rows {
		if rows[i].Vessel == vessel {
			subset = append(subset, &rows[i])
		}
	}
	if len(subset) == 0 {
		return nil
	}

	for _, r := range subset {
		if r.Status == models.StatusInTransit {
			return r
		}
	}

	var best *models.VesselObservation
	var bestT time.Time
	for _, r := range subset {
		t := progress.NextOccurrence(r.ScheduledDeparture, now, loc)
		if t == nil {
			continue
		}
		if best == nil || t.Before(bestT) {
			best, bestT = r, *t
		}
	}
	if best == nil {
		return subset[0]
	}
	return best
}

// earliestUpcoming picks the soonest next-occurring departure among the
// rows, skipping the excluded vessel. Returns nil when nothing
// qualifies; a slot stays empty rather than duplicating.
func earliestUpcoming(rows []models.VesselObservation, exclude string, now time.Time, loc *time.Location) *models.VesselObservation {
	var best *models.VesselObservation
	var bestT time.Time
	for i := range rows {
		r := &rows[i]
		if exclude != "" && r.Vessel == exclude {
			continue
		}
		t := progress.NextOccurrence(r.ScheduledDeparture, now, loc)
		if t == nil {
			continue
		}
		if best == nil || t.Before(bestT) {
			best, bestT = r, *t
		}
	}
	if best == nil {
		for i := range rows {
			if exclude == "" || rows[i].Vessel != exclude {
				return &rows[i]
			}
		}
	}
	return best
}
