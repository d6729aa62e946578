// Package feed turns one poll cycle's raw WSDOT payloads into the
// uniform observations and live-position index the reconciliation
// engine consumes. All the feed's inconsistencies are absorbed here:
// identity resolved from IDs before free text, capacity figures
// corrected against a small override table, inverted ETAs discarded.
package feed

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

// Terminal is one monitored terminal side.
type Terminal struct {
	ID   int
	Name string
}

// Result is everything one cycle of normalization yields.
type Result struct {
	// Observations holds up to one row per monitored terminal, in
	// terminal order. Rows that could not resolve a vessel are dropped,
	// not zero-filled.
	Observations []models.VesselObservation

	// Live indexes the cycle's vessel positions by name and route.
	Live models.LiveIndex

	// Arrivals maps vessel name to an observed arrival instant.
	Arrivals map[string]time.Time
}

// Normalizer converts raw cycle payloads for one route.
type Normalizer struct {
	terminals []Terminal
	loc       *time.Location
}

// Some vessels report deck space that does not match their real car
// capacity; these figures win over anything the stats feed says.
var capacityOverrides = map[string]int{
	"tacoma":    197,
	"wenatchee": 197,
}

var vesselPrefixRe = regexp.MustCompile(`^m/?v\.?\s+`)
var vesselParenRe = regexp.MustCompile(`\s*\(.*\)\s*$`)

// NormalizeVesselName lowers, strips the M/V prefix and any trailing
// parenthetical, so capacity lookups survive the feed's naming drift.
func NormalizeVesselName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = vesselPrefixRe.ReplaceAllString(s, "")
	s = vesselParenRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NewNormalizer creates a normalizer for the monitored terminals.
func NewNormalizer(terminals []Terminal, loc *time.Location) *Normalizer {
	return &Normalizer{terminals: terminals, loc: loc}
}

// Normalize produces the cycle result for the given instant.
func (n *Normalizer) Normalize(data *wsdot.CycleData, now time.Time) *Result {
	res := &Result{
		Live:     models.NewLiveIndex(),
		Arrivals: make(map[string]time.Time),
	}

	n.indexLive(data.Locations, res)
	caps := capacityByVessel(data.Stats)
	entries := scheduleEntries(data.Schedule, now)

	for i, term := range n.terminals {
		dest := n.terminals[(i+1)%len(n.terminals)]

		entry := nearestEntry(entries, term.ID, now)
		if entry == nil {
			continue
		}

		avail := driveUpSpace(data.SpaceByTerminal[term.ID], term.ID, dest.ID, entry.dep)
		if obs := n.shape(entry, term, dest, caps, avail, res); obs != nil {
			res.Observations = append(res.Observations, *obs)
		}
	}

	n.disambiguate(res)
	return res
}

type scheduleEntry struct {
	termID int
	vessel string
	dep    time.Time
}

// scheduleEntries picks each terminal combo's next departure at or
// after now, falling back to the last sailing of the day.
func scheduleEntries(sched *wsdot.Schedule, now time.Time) []scheduleEntry {
	if sched == nil {
		return nil
	}

	var entries []scheduleEntry
	for _, combo := range sched.TerminalCombos {
		var times []wsdot.SailingTime
		for _, st := range combo.Times {
			if !st.DepartingTime.IsZero() {
				times = append(times, st)
			}
		}
		if len(times) == 0 {
			continue
		}
		sort.Slice(times, func(i, j int) bool {
			return times[i].DepartingTime.Before(times[j].DepartingTime.Time)
		})

		next := times[len(times)-1]
		for _, st := range times {
			if !st.DepartingTime.Before(now) {
				next = st
				break
			}
		}

		entries = append(entries, scheduleEntry{
			termID: combo.DepartingTerminalID,
			vessel: next.VesselName,
			dep:    next.DepartingTime.Time,
		})
	}
	return entries
}

// nearestEntry picks the terminal's soonest future departure, else its
// latest past one.
func nearestEntry(entries []scheduleEntry, termID int, now time.Time) *scheduleEntry {
	var candidates []scheduleEntry
	for _, e := range entries {
		if e.termID == termID {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].dep.Before(candidates[j].dep)
	})
	for i := range candidates {
		if !candidates[i].dep.Before(now) {
			return &candidates[i]
		}
	}
	return &candidates[len(candidates)-1]
}

func (n *Normalizer) indexLive(locs []wsdot.VesselLocation, res *Result) {
	for i := range locs {
		l := &locs[i]
		name := strings.TrimSpace(l.VesselName)

		if name != "" {
			if arr := l.BestArrival(); arr != nil {
				res.Arrivals[name] = *arr
			}
		}

		depID, arrID := l.DepTerminalID(), l.ArrTerminalID()
		if depID == 0 || arrID == 0 {
			continue
		}

		pos := models.LivePosition{
			Vessel:              name,
			DepartingTerminalID: depID,
			ArrivingTerminalID:  arrID,
			AtDock:              l.IsAtDock(),
			LeftDock:            l.BestLeftDock(),
			ETA:                 l.BestETA(),
		}

		res.Live.ByRoute[models.RouteKey{DepartingTerminalID: depID, ArrivingTerminalID: arrID}] = pos
		if name != "" {
			res.Live.ByVessel[name] = pos
		}
	}
}

func capacityByVessel(stats []wsdot.VesselStat) map[string]int {
	caps := make(map[string]int)
	for _, s := range stats {
		if s.VesselName == "" {
			continue
		}
		key := NormalizeVesselName(s.VesselName)

		total := 0
		switch {
		case s.VehicleCount != nil:
			total = *s.VehicleCount
		case s.RegDeckSpace+s.TallDeckSpace > 0:
			total = s.RegDeckSpace + s.TallDeckSpace
		case s.MaxVehicleCount != nil:
			total = *s.MaxVehicleCount
		}

		if override, ok := capacityOverrides[key]; ok {
			total = override
		}
		if total > 0 {
			caps[key] = total
		}
	}
	return caps
}

// driveUpSpace matches the terminal's space report to the scheduled
// departure (within ten minutes) and the arrival terminal. A report
// the terminal chooses not to display resolves to unknown, not zero.
func driveUpSpace(spaces []wsdot.TerminalSpace, termID, arrivalID int, dep time.Time) *int {
	var term *wsdot.TerminalSpace
	for i := range spaces {
		if spaces[i].TerminalID == termID {
			term = &spaces[i]
			break
		}
	}
	if term == nil {
		return nil
	}

	var best *wsdot.DepartingSpace
	bestDelta := 10 * time.Minute
	for i := range term.DepartingSpaces {
		rec := &term.DepartingSpaces[i]
		if rec.Departure.IsZero() {
			continue
		}
		delta := rec.Departure.Sub(dep)
		if delta < 0 {
			delta = -delta
		}
		if delta <= bestDelta {
			best = rec
			bestDelta = delta
		}
	}
	if best == nil || len(best.SpaceForArrivalTerminals) == 0 {
		return nil
	}

	match := &best.SpaceForArrivalTerminals[0]
	for i := range best.SpaceForArrivalTerminals {
		if best.SpaceForArrivalTerminals[i].TerminalID == arrivalID {
			match = &best.SpaceForArrivalTerminals[i]
			break
		}
	}
	if !match.DisplayDriveUpSpace {
		return nil
	}
	return match.DriveUpSpaceCount
}

func (n *Normalizer) shape(entry *scheduleEntry, origin, dest Terminal, caps map[string]int, avail *int, res *Result) *models.VesselObservation {
	routeLive, hasRouteLive := res.Live.ByRoute[models.RouteKey{
		DepartingTerminalID: origin.ID,
		ArrivingTerminalID:  dest.ID,
	}]

	vessel := entry.vessel
	if hasRouteLive && strings.TrimSpace(routeLive.Vessel) != "" {
		vessel = routeLive.Vessel
	}
	vessel = strings.TrimSpace(vessel)
	if vessel == "" {
		// Cannot resolve an identity for this row; drop it rather than
		// emit an anonymous lane.
		return nil
	}

	vesselLive, hasVesselLive := res.Live.ByVessel[vessel]

	obs := &models.VesselObservation{
		Vessel:                vessel,
		Direction:             origin.Name + " → " + dest.Name,
		OriginTerminalID:      origin.ID,
		DestinationTerminalID: dest.ID,
		ScheduledDeparture:    n.hhmm(entry.dep),
		CarSlotsAvailable:     avail,
	}
	depAt := entry.dep
	obs.ScheduledDepartureAt = &depAt

	if total, ok := caps[NormalizeVesselName(vessel)]; ok {
		obs.CarSlotsTotal = &total
	}

	// Departure: the vessel's own live record wins over the route
	// match, which wins over the schedule.
	var leftDock *time.Time
	if hasVesselLive && vesselLive.LeftDock != nil {
		leftDock = vesselLive.LeftDock
	} else if hasRouteLive && routeLive.LeftDock != nil {
		leftDock = routeLive.LeftDock
	}
	if leftDock != nil {
		s := n.hhmm(*leftDock)
		obs.ActualDeparture = &s
		obs.DepartureLabel = s
		obs.Status = models.StatusInTransit
	} else {
		obs.DepartureLabel = obs.ScheduledDeparture
		obs.Status = models.StatusScheduled
	}

	// ETA: prefer the route-matched one, discarding it when it would
	// precede the live departure (inverted feed data); fall back to the
	// vessel's own record.
	var eta *time.Time
	if hasRouteLive && routeLive.ETA != nil {
		eta = routeLive.ETA
		if routeLive.LeftDock != nil && eta.Before(*routeLive.LeftDock) {
			eta = nil
		}
	}
	if eta == nil && hasVesselLive && vesselLive.ETA != nil {
		eta = vesselLive.ETA
		if vesselLive.LeftDock != nil && eta.Before(*vesselLive.LeftDock) {
			eta = nil
		}
	}
	if eta != nil {
		s := n.hhmm(*eta)
		obs.EstimatedArrival = &s
	}

	// An arrival only belongs on a row that is not currently sailing.
	if obs.Status != models.StatusInTransit {
		if arr, ok := res.Arrivals[vessel]; ok {
			s := n.hhmm(arr)
			obs.ActualArrival = &s
		}
	}

	// The scheduled pair stands unless the live position confirms the
	// exact same sailing, in which case the live IDs are authoritative.
	if hasVesselLive && vesselLive.LeftDock != nil &&
		vesselLive.DepartingTerminalID == origin.ID &&
		vesselLive.ArrivingTerminalID == dest.ID {
		obs.OriginTerminalID = vesselLive.DepartingTerminalID
		obs.DestinationTerminalID = vesselLive.ArrivingTerminalID
	}

	return obs
}

// disambiguate handles both rows resolving to the same vessel (a
// mid-sailing swap reported inconsistently): route-keyed live names
// are the tiebreaker.
func (n *Normalizer) disambiguate(res *Result) {
	if len(res.Observations) != 2 {
		return
	}
	a, b := &res.Observations[0], &res.Observations[1]
	if a.Vessel == "" || a.Vessel != b.Vessel {
		return
	}

	for _, obs := range []*models.VesselObservation{a, b} {
		key := models.RouteKey{
			DepartingTerminalID: obs.OriginTerminalID,
			ArrivingTerminalID:  obs.DestinationTerminalID,
		}
		if live, ok := res.Live.ByRoute[key]; ok && strings.TrimSpace(live.Vessel) != "" {
			obs.Vessel = strings.TrimSpace(live.Vessel)
		}
	}
}

func (n *Normalizer) hhmm(t time.Time) string {
	return t.In(n.loc).Format("3:04 PM")
}
