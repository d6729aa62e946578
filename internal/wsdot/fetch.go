package wsdot

import (
	"context"
	"fmt"
)

// FetchCycle issues the per-resource fetches for one poll cycle
// concurrently and collects them into a CycleData. Any single failure
// fails the whole cycle so the caller keeps its previous snapshot.
func FetchCycle(ctx context.Context, c Client, routeID int, terminalIDs []int) (*CycleData, error) {
	type result struct {
		name string
		err  error
	}

	data := &CycleData{
		SpaceByTerminal: make(map[int][]TerminalSpace, len(terminalIDs)),
	}

	results := make(chan result, 3+len(terminalIDs))

	go func() {
		sched, err := c.ScheduleToday(ctx, routeID)
		data.Schedule = sched
		results <- result{"schedule", err}
	}()
	go func() {
		locs, err := c.VesselLocations(ctx)
		data.Locations = locs
		results <- result{"vessel locations", err}
	}()
	go func() {
		stats, err := c.VesselStats(ctx)
		data.Stats = stats
		results <- result{"vessel stats", err}
	}()

	spaces := make([]struct {
		terminalID int
		spaces     []TerminalSpace
	}, len(terminalIDs))
	for i, id := range terminalIDs {
		i, id := i, id
		go func() {
			sp, err := c.TerminalSpace(ctx, id, routeID)
			spaces[i].terminalID = id
			spaces[i].spaces = sp
			results <- result{fmt.Sprintf("terminal space %d", id), err}
		}()
	}

	for i := 0; i < 3+len(terminalIDs); i++ {
		if r := <-results; r.err != nil {
			return nil, fmt.Errorf("fetching %s: %w", r.name, r.err)
		}
	}

	for _, sp := range spaces {
		data.SpaceByTerminal[sp.terminalID] = sp.spaces
	}
	return data, nil
}
