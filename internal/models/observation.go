package models

import "time"

// VesselStatus classifies a sailing as still at the dock or on the water.
type VesselStatus string

const (
	StatusScheduled VesselStatus = "scheduled"
	StatusInTransit VesselStatus = "inTransit"
)

// VesselObservation is one vessel's normalized data for a single poll
// cycle. A fresh set is produced every cycle; observations are never
// mutated after the normalizer returns them.
//
// Times that render on the face are kept as local clock strings
// ("3:04 PM") exactly as the feed presents them; nil means the feed had
// nothing, which is distinct from an empty or zero value. Parsed
// instants ride alongside where the feed provides them.
type VesselObservation struct {
	Vessel                string
	Direction             string // "Seattle → Bainbridge Island"
	OriginTerminalID      int
	DestinationTerminalID int
	Status                VesselStatus

	ScheduledDeparture   string
	ScheduledDepartureAt *time.Time
	ActualDeparture      *string
	DepartureLabel       string // actual when known, scheduled otherwise
	EstimatedArrival     *string
	ActualArrival        *string

	CarSlotsTotal     *int
	CarSlotsAvailable *int
}

// Underway reports whether this observation describes a sailing in
// progress.
func (o *VesselObservation) Underway() bool {
	if o == nil {
		return false
	}
	return o.Status == StatusInTransit || o.ActualDeparture != nil
}

// RouteKey identifies a directed terminal pair.
type RouteKey struct {
	DepartingTerminalID int
	ArrivingTerminalID  int
}

// LivePosition is one vessel's live-feed record for the current cycle.
type LivePosition struct {
	Vessel              string
	DepartingTerminalID int
	ArrivingTerminalID  int
	AtDock              bool
	LeftDock            *time.Time
	ETA                 *time.Time
}

// LiveIndex holds the cycle's live positions keyed both ways the
// reconciler needs them.
type LiveIndex struct {
	ByVessel map[string]LivePosition
	ByRoute  map[RouteKey]LivePosition
}

// NewLiveIndex returns an empty index with both maps allocated.
func NewLiveIndex() LiveIndex {
	return LiveIndex{
		ByVessel: make(map[string]LivePosition),
		ByRoute:  make(map[RouteKey]LivePosition),
	}
}
