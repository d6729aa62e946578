package wsdot

import (
	"context"
)

// Client defines the WSDOT Ferries API surface the poll cycle needs.
type Client interface {
	// ScheduleToday retrieves today's schedule for a route.
	ScheduleToday(ctx context.Context, routeID int) (*Schedule, error)

	// VesselLocations retrieves live positions for all vessels.
	VesselLocations(ctx context.Context) ([]VesselLocation, error)

	// TerminalSpace retrieves drive-up space for one terminal on a route.
	TerminalSpace(ctx context.Context, terminalID, routeID int) ([]TerminalSpace, error)

	// VesselStats retrieves static capacity figures for all vessels.
	VesselStats(ctx context.Context) ([]VesselStat, error)

	// Routes retrieves the route listing with terminal names.
	Routes(ctx context.Context) ([]Route, error)
}

// CycleData bundles the per-resource payloads one poll cycle consumes.
type CycleData struct {
	Schedule        *Schedule
	Locations       []VesselLocation
	SpaceByTerminal map[int][]TerminalSpace
	Stats           []VesselStat
}
