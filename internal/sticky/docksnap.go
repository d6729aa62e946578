package sticky

import (
	"encoding/json"
	"time"

	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/progress"
	"github.com/abw750/ferry-clock/internal/store"
)

const (
	dockSnapStoreKey = "dockSnapshots"

	// DockSnapshotGrace keeps a snapshot alive briefly past its
	// scheduled departure so the dock presentation survives the feed
	// dropping a row right around sailing time.
	DockSnapshotGrace = 5 * time.Minute
)

// DockSnapshotCache records the last docked observation per vessel.
// Unlike the TTL caches, each entry carries its own expiry: scheduled
// departure plus the grace period.
type DockSnapshotCache struct {
	byVessel map[string]models.DockSnapshot
	st       store.Store
	now      func() time.Time
	loc      *time.Location
}

// NewDockSnapshotCache builds the cache and reloads persisted entries.
func NewDockSnapshotCache(st store.Store, now func() time.Time, loc *time.Location) *DockSnapshotCache {
	c := &DockSnapshotCache{
		byVessel: make(map[string]models.DockSnapshot),
		st:       st,
		now:      now,
		loc:      loc,
	}
	c.load()
	return c
}

// Upsert records a docked observation. Underway observations and rows
// without a parseable scheduled departure are ignored.
func (c *DockSnapshotCache) Upsert(o *models.VesselObservation) {
	if o == nil || o.Vessel == "" || o.Underway() {
		return
	}
	depart := progress.NextOccurrence(o.ScheduledDeparture, c.now(), c.loc)
	if depart == nil {
		return
	}

	c.byVessel[o.Vessel] = models.DockSnapshot{
		Vessel:                o.Vessel,
		ScheduledDeparture:    o.ScheduledDeparture,
		ActualArrival:         o.ActualArrival,
		OriginTerminalID:      o.OriginTerminalID,
		DestinationTerminalID: o.DestinationTerminalID,
		Direction:             o.Direction,
		ExpiresAt:             depart.Add(DockSnapshotGrace),
	}
	c.save()
}

// Get returns the live snapshot for a vessel, expiring it on read once
// its departure grace has lapsed.
func (c *DockSnapshotCache) Get(vessel string) *models.DockSnapshot {
	s, ok := c.byVessel[vessel]
	if !ok {
		return nil
	}
	if c.now().After(s.ExpiresAt) {
		delete(c.byVessel, vessel)
		c.save()
		return nil
	}
	return &s
}

func (c *DockSnapshotCache) load() {
	if c.st == nil {
		return
	}
	raw, ok, err := c.st.Get(dockSnapStoreKey)
	if err != nil || !ok {
		return
	}
	var entries map[string]models.DockSnapshot
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || entries == nil {
		return
	}
	c.byVessel = entries
}

func (c *DockSnapshotCache) save() {
	if c.st == nil {
		return
	}
	raw, err := json.Marshal(c.byVessel)
	if err != nil {
		return
	}
	_ = c.st.Set(dockSnapStoreKey, string(raw))
}
