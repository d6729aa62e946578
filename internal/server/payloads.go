package server

import (
	"time"

	"github.com/abw750/ferry-clock/internal/models"
)

// routeEntry mirrors the upstream route listing shape so existing
// clients keep working against the fallback.
type routeEntry struct {
	RouteID   int             `json:"routeId"`
	RouteName string          `json:"routeName"`
	Terminals []terminalEntry `json:"terminals"`
}

type terminalEntry struct {
	TerminalID   int    `json:"terminalId"`
	TerminalName string `json:"terminalName"`
}

func configuredRoute(r models.RouteSelection) routeEntry {
	return routeEntry{
		RouteID:   r.RouteID,
		RouteName: r.Description,
		Terminals: []terminalEntry{
			{TerminalID: r.TerminalIDWest, TerminalName: r.TerminalNameWest},
			{TerminalID: r.TerminalIDEast, TerminalName: r.TerminalNameEast},
		},
	}
}

// peekEntry is the trimmed live-position view for debugging.
type peekEntry struct {
	VesselName          string     `json:"vesselName"`
	DepartingTerminalID int        `json:"departingTerminalId"`
	ArrivingTerminalID  int        `json:"arrivingTerminalId"`
	LeftDock            *time.Time `json:"leftDock"`
	Eta                 *time.Time `json:"eta"`
	AtDock              bool       `json:"atDock"`
}

// summaryRow is the per-lane summary shape.
type summaryRow struct {
	Vessel             string  `json:"vessel"`
	Direction          string  `json:"direction"`
	Status             string  `json:"status"`
	ScheduledDeparture string  `json:"scheduledDepartureTime"`
	ActualDeparture    *string `json:"actualDepartureTime"`
	DepartureLabel     string  `json:"departureTime"`
	EstimatedArrival   *string `json:"estimatedArrivalTime"`
	ActualArrival      *string `json:"actualArrivalTime"`
	CarSlotsTotal      *int    `json:"carSlotsTotal"`
	CarSlotsAvailable  *int    `json:"carSlotsAvailable"`
}

func summaryRows(obs []models.VesselObservation) []summaryRow {
	out := make([]summaryRow, 0, len(obs))
	for _, o := range obs {
		out = append(out, summaryRow{
			Vessel:             o.Vessel,
			Direction:          o.Direction,
			Status:             string(o.Status),
			ScheduledDeparture: o.ScheduledDeparture,
			ActualDeparture:    o.ActualDeparture,
			DepartureLabel:     o.DepartureLabel,
			EstimatedArrival:   o.EstimatedArrival,
			ActualArrival:      o.ActualArrival,
			CarSlotsTotal:      o.CarSlotsTotal,
			CarSlotsAvailable:  o.CarSlotsAvailable,
		})
	}
	return out
}
