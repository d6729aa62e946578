package sticky

import (
	"testing"
	"time"

	"github.com/abw750/ferry-clock/internal/clock"
	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/store"
)

func TestDockSnapshotCache(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}
	clk := clock.NewFake(time.Date(2026, 3, 10, 8, 30, 0, 0, loc))
	c := NewDockSnapshotCache(store.NewMemory(), clk.Now, loc)

	obs := &models.VesselObservation{
		Vessel:                "Tacoma",
		Status:                models.StatusScheduled,
		ScheduledDeparture:    "9:00 AM",
		OriginTerminalID:      3,
		DestinationTerminalID: 7,
		Direction:             "Bainbridge Island → Seattle",
	}
	c.Upsert(obs)

	got := c.Get("Tacoma")
	if got == nil || got.ScheduledDeparture != "9:00 AM" {
		t.Fatalf("Get after Upsert = %+v", got)
	}

	// Row converts back into a docked pseudo-observation.
	row := got.AsObservation()
	if row.Underway() || row.Vessel != "Tacoma" || row.OriginTerminalID != 3 {
		t.Errorf("AsObservation = %+v", row)
	}

	// Still alive within the five-minute grace past departure.
	clk.Set(time.Date(2026, 3, 10, 9, 3, 0, 0, loc))
	if c.Get("Tacoma") == nil {
		t.Fatal("snapshot expired inside departure grace")
	}

	// Gone after the grace lapses.
	clk.Set(time.Date(2026, 3, 10, 9, 6, 0, 0, loc))
	if got := c.Get("Tacoma"); got != nil {
		t.Fatalf("snapshot survived past grace: %+v", got)
	}
}

func TestDockSnapshotCacheIgnoresUnderway(t *testing.T) {
	loc := time.UTC
	clk := clock.NewFake(time.Date(2026, 3, 10, 8, 30, 0, 0, loc))
	c := NewDockSnapshotCache(store.NewMemory(), clk.Now, loc)

	c.Upsert(&models.VesselObservation{
		Vessel:             "Wenatchee",
		Status:             models.StatusInTransit,
		ScheduledDeparture: "9:00 AM",
	})
	if c.Get("Wenatchee") != nil {
		t.Error("underway observation must not produce a dock snapshot")
	}

	c.Upsert(&models.VesselObservation{
		Vessel: "Wenatchee",
		Status: models.StatusScheduled,
		// no parseable departure
	})
	if c.Get("Wenatchee") != nil {
		t.Error("row without a scheduled departure must not produce a snapshot")
	}
}

func TestDockSnapshotCachePersistence(t *testing.T) {
	loc := time.UTC
	clk := clock.NewFake(time.Date(2026, 3, 10, 8, 30, 0, 0, loc))
	st := store.NewMemory()

	c := NewDockSnapshotCache(st, clk.Now, loc)
	c.Upsert(&models.VesselObservation{
		Vessel:             "Tacoma",
		Status:             models.StatusScheduled,
		ScheduledDeparture: "9:00 AM",
	})

	c2 := NewDockSnapshotCache(st, clk.Now, loc)
	if c2.Get("Tacoma") == nil {
		t.Error("snapshot did not survive a restart")
	}
}
