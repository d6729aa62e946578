package models

import "time"

// RouteSelection is the route metadata the display needs, resolved once
// from configuration.
type RouteSelection struct {
	Description      string `json:"description"`
	RouteID          int    `json:"routeId"`
	CrossingMinutes  int    `json:"crossingTimeMinutes"`
	TerminalIDWest   int    `json:"terminalIdWest"`
	TerminalIDEast   int    `json:"terminalIdEast"`
	TerminalNameWest string `json:"terminalNameWest"`
	TerminalNameEast string `json:"terminalNameEast"`
	LabelWest        string `json:"labelWest"`
	LabelEast        string `json:"labelEast"`
}

// SlotState is one display slot's fully reconciled view for a cycle.
// Nil pointer fields mean "unknown" and must render as such, never as
// zero.
type SlotState struct {
	Vessel                string       `json:"vesselName"`
	Phase                 DockPhase    `json:"phase,omitempty"`
	Status                VesselStatus `json:"status,omitempty"`
	Direction             string       `json:"direction,omitempty"`
	OriginTerminalID      int          `json:"originTerminalId,omitempty"`
	DestinationTerminalID int          `json:"destinationTerminalId,omitempty"`

	ScheduledDeparture string  `json:"scheduledDeparture,omitempty"`
	ActualDeparture    *string `json:"actualDeparture"`
	DepartureLabel     string  `json:"departureLabel,omitempty"`
	ETA                *string `json:"eta"`
	Arrival            *string `json:"arrivalTime"`

	DockStart          *time.Time `json:"dockStartTime"`
	DockStartSynthetic bool       `json:"dockStartIsSynthetic"`

	DockFraction    *float64 `json:"dockArcFraction"`
	TransitFraction *float64 `json:"transitFraction"`
}

// TerminalCapacity is one terminal side's car-space view. Available is
// nil once the sticky window has fully lapsed; Fresh reports whether
// the value was updated within the soft window.
type TerminalCapacity struct {
	TerminalID int  `json:"terminalId"`
	Total      *int `json:"maxAuto"`
	Available  *int `json:"availAuto"`
	Fresh      bool `json:"hasLiveData"`
}

// CanonicalState is the renderer-ready snapshot produced once per poll
// cycle. It is immutable: readers always see a complete snapshot.
type CanonicalState struct {
	Route RouteSelection `json:"route"`

	// Slots[0] and Slots[1] never resolve to the same vessel name.
	Slots [2]*SlotState `json:"slots"`

	CapacityWest TerminalCapacity `json:"capacityWest"`
	CapacityEast TerminalCapacity `json:"capacityEast"`

	FetchedAt time.Time `json:"fetchedAt"`
	Stale     bool      `json:"stale"`
}

// FetchStatus summarizes the most recent poll cycle for observability.
type FetchStatus struct {
	LastFetchedAt *time.Time `json:"lastFetchedAt"`
	LastError     string     `json:"lastError,omitempty"`
	Rows          int        `json:"items"`
}
