package wsdot

import "time"

// Schedule is today's schedule for one route.
type Schedule struct {
	TerminalCombos []TerminalCombo `json:"TerminalCombos"`
}

// TerminalCombo lists the sailings for one directed terminal pair.
type TerminalCombo struct {
	DepartingTerminalID   int           `json:"DepartingTerminalID"`
	DepartingTerminalName string        `json:"DepartingTerminalName"`
	ArrivingTerminalID    int           `json:"ArrivingTerminalID"`
	ArrivingTerminalName  string        `json:"ArrivingTerminalName"`
	Times                 []SailingTime `json:"Times"`
}

// SailingTime is one scheduled departure.
type SailingTime struct {
	DepartingTime Timestamp `json:"DepartingTime"`
	VesselName    string    `json:"VesselName"`
}

// VesselLocation is one vessel's live-position record. The feed has
// shipped several spellings for the departure, arrival, and ETA fields
// over time; the Best* accessors resolve the synonyms in a fixed order
// so nothing downstream scans unknown keys.
type VesselLocation struct {
	VesselName string `json:"VesselName"`

	DepartingTerminalID int `json:"DepartingTerminalID"`
	OriginTerminalID    int `json:"OriginTerminalID"`

	ArrivingTerminalID    int `json:"ArrivingTerminalID"`
	DestinationTerminalID int `json:"DestinationTerminalID"`

	AtDock bool   `json:"AtDock"`
	Status string `json:"Status"`

	LeftDock      Timestamp `json:"LeftDock"`
	DepartedUTC   Timestamp `json:"DepartedUTC"`
	DepartureTime Timestamp `json:"DepartureTime"`

	Eta              Timestamp `json:"Eta"`
	EstimatedArrival Timestamp `json:"EstimatedArrival"`

	Arrived           Timestamp `json:"Arrived"`
	Arrival           Timestamp `json:"Arrival"`
	ActualArrival     Timestamp `json:"ActualArrival"`
	ActualArrivalTime Timestamp `json:"ActualArrivalTime"`
}

// DepTerminalID resolves the departing-terminal synonym pair.
func (v *VesselLocation) DepTerminalID() int {
	if v.DepartingTerminalID != 0 {
		return v.DepartingTerminalID
	}
	return v.OriginTerminalID
}

// ArrTerminalID resolves the arriving-terminal synonym pair.
func (v *VesselLocation) ArrTerminalID() int {
	if v.ArrivingTerminalID != 0 {
		return v.ArrivingTerminalID
	}
	return v.DestinationTerminalID
}

// BestLeftDock resolves the departure-instant synonyms.
func (v *VesselLocation) BestLeftDock() *time.Time {
	for _, t := range []Timestamp{v.LeftDock, v.DepartedUTC, v.DepartureTime} {
		if p := t.TimePtr(); p != nil {
			return p
		}
	}
	return nil
}

// BestETA resolves the estimated-arrival synonyms.
func (v *VesselLocation) BestETA() *time.Time {
	for _, t := range []Timestamp{v.Eta, v.EstimatedArrival} {
		if p := t.TimePtr(); p != nil {
			return p
		}
	}
	return nil
}

// BestArrival resolves the actual-arrival synonyms.
func (v *VesselLocation) BestArrival() *time.Time {
	for _, t := range []Timestamp{v.Arrived, v.Arrival, v.ActualArrival, v.ActualArrivalTime} {
		if p := t.TimePtr(); p != nil {
			return p
		}
	}
	return nil
}

// IsAtDock folds the boolean flag with the older status string.
func (v *VesselLocation) IsAtDock() bool {
	return v.AtDock || v.Status == "Docked"
}

// TerminalSpace is one terminal's drive-up space report.
type TerminalSpace struct {
	TerminalID      int              `json:"TerminalID"`
	DepartingSpaces []DepartingSpace `json:"DepartingSpaces"`
}

// DepartingSpace is the space report for one scheduled departure.
type DepartingSpace struct {
	Departure                Timestamp      `json:"Departure"`
	SpaceForArrivalTerminals []ArrivalSpace `json:"SpaceForArrivalTerminals"`
}

// ArrivalSpace is the drive-up space toward one arrival terminal.
type ArrivalSpace struct {
	TerminalID          int  `json:"TerminalID"`
	DriveUpSpaceCount   *int `json:"DriveUpSpaceCount"`
	DisplayDriveUpSpace bool `json:"DisplayDriveUpSpace"`
}

// VesselStat is the static capacity record for one vessel.
type VesselStat struct {
	VesselName      string `json:"VesselName"`
	RegDeckSpace    int    `json:"RegDeckSpace"`
	TallDeckSpace   int    `json:"TallDeckSpace"`
	VehicleCount    *int   `json:"VehicleCount"`
	MaxVehicleCount *int   `json:"MaxVehicleCount"`
}

// Route is one entry from the routes listing.
type Route struct {
	RouteID   int             `json:"RouteID"`
	RouteName string          `json:"RouteName"`
	Terminals []RouteTerminal `json:"Terminals"`
}

// RouteTerminal is one terminal on a route.
type RouteTerminal struct {
	TerminalID   int    `json:"TerminalID"`
	TerminalName string `json:"TerminalName"`
}
