package models

import "time"

// DockPhase is the derived docked/underway classification for display.
type DockPhase string

const (
	PhaseDocked   DockPhase = "docked"
	PhaseUnderway DockPhase = "underway"
)

// VesselDockState is the durable per-vessel dock/transit history. One
// record per vessel name, carried across poll cycles for the process
// lifetime; only the reconciler writes it.
//
// Once Arrival or DockStart holds a real (non-synthetic) instant, a
// synthetic value must never overwrite it. A later real value may
// replace a synthetic one.
type VesselDockState struct {
	LastSeen         time.Time
	Underway         bool
	LastSeenUnderway *time.Time

	Arrival            *time.Time
	DockStart          *time.Time
	DockStartSynthetic bool
}

// DockSnapshot is the last-docked record kept per vessel so a dock
// presentation can outlive a brief feed gap. It expires shortly after
// the scheduled departure it was recorded against.
type DockSnapshot struct {
	Vessel                string    `json:"vessel"`
	ScheduledDeparture    string    `json:"scheduledDeparture"`
	ActualArrival         *string   `json:"actualArrival"`
	OriginTerminalID      int       `json:"originTerminalId"`
	DestinationTerminalID int       `json:"destinationTerminalId"`
	Direction             string    `json:"direction"`
	ExpiresAt             time.Time `json:"expiresAt"`
}

// AsObservation converts the snapshot into a docked pseudo-observation
// so the row selector can fall back to it when the feed drops a vessel.
func (s *DockSnapshot) AsObservation() *VesselObservation {
	if s == nil {
		return nil
	}
	return &VesselObservation{
		Vessel:                s.Vessel,
		Direction:             s.Direction,
		OriginTerminalID:      s.OriginTerminalID,
		DestinationTerminalID: s.DestinationTerminalID,
		Status:                StatusScheduled,
		ScheduledDeparture:    s.ScheduledDeparture,
		DepartureLabel:        s.ScheduledDeparture,
		ActualArrival:         s.ActualArrival,
	}
}
