package sticky

import (
	"encoding/json"
	"time"

	"github.com/abw750/ferry-clock/internal/store"
)

const (
	capacityStoreKey = "capacitySticky"

	capacitySoftTTL = 5 * time.Minute
	capacityHardTTL = 20 * time.Minute
)

// CapacityCache keeps per-terminal car-space figures steady through
// feed gaps. The available count gets the full sticky treatment; the
// total is accepted whenever finite and otherwise kept as-is, since
// vessel capacity effectively never changes mid-day.
type CapacityCache struct {
	avail  *Cache[string, int]
	totals map[string]int
	st     store.Store
}

type capacityState struct {
	Avail  map[string]Entry[int] `json:"avail"`
	Totals map[string]int        `json:"totals"`
}

// NewCapacityCache builds the cache and reloads any persisted state so
// a restart mid-gap does not zero the gauges.
func NewCapacityCache(st store.Store, now func() time.Time) *CapacityCache {
	c := &CapacityCache{
		avail:  New[string, int](capacitySoftTTL, capacityHardTTL, now),
		totals: make(map[string]int),
		st:     st,
	}
	c.load()
	return c
}

// Reconcile folds one cycle's figures for a terminal side and returns
// what to present. Negative or absent counts never become zeros: the
// available figure rides the sticky windows, then goes unknown.
func (c *CapacityCache) Reconcile(side string, total, avail *int) (outTotal, outAvail *int, fresh bool) {
	if total != nil && *total >= 0 {
		c.totals[side] = *total
	}
	if t, ok := c.totals[side]; ok {
		outTotal = &t
	}

	if avail != nil && *avail < 0 {
		avail = nil
	}
	outAvail = c.avail.Reconcile(side, avail)
	fresh = c.avail.Fresh(side)

	c.save()
	return outTotal, outAvail, fresh
}

func (c *CapacityCache) load() {
	if c.st == nil {
		return
	}
	raw, ok, err := c.st.Get(capacityStoreKey)
	if err != nil || !ok {
		return
	}
	var state capacityState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return
	}
	c.avail.Restore(state.Avail)
	if state.Totals != nil {
		c.totals = state.Totals
	}
}

func (c *CapacityCache) save() {
	if c.st == nil {
		return
	}
	state := capacityState{Avail: c.avail.Entries(), Totals: c.totals}
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	// Best effort: a failed write only costs stickiness across restart.
	_ = c.st.Set(capacityStoreKey, string(raw))
}
