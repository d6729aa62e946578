package sticky

import "time"

const etaReuseWindow = 90 * time.Second

// EtaCache smooths per-vessel ETA labels. A vessel's entry arms on the
// first valid ETA observed while underway; once armed, a cycle that
// reports no ETA reuses the last one for up to 90 seconds. The moment
// the vessel is back at the dock the entry clears outright.
type EtaCache struct {
	values *Cache[string, string]
	armed  map[string]bool
}

// NewEtaCache builds an ETA cache around the given clock.
func NewEtaCache(now func() time.Time) *EtaCache {
	return &EtaCache{
		values: New[string, string](etaReuseWindow, etaReuseWindow, now),
		armed:  make(map[string]bool),
	}
}

// Reconcile returns the ETA string to present for a vessel this cycle,
// or nil when none should show.
func (c *EtaCache) Reconcile(vessel string, eta *string, underway bool) *string {
	if vessel == "" {
		return eta
	}

	if !underway {
		c.values.Clear(vessel)
		c.armed[vessel] = false
		return eta
	}

	if eta != nil && *eta != "" && *eta != "—" {
		c.armed[vessel] = true
		return c.values.Reconcile(vessel, eta)
	}

	if !c.armed[vessel] {
		return nil
	}
	return c.values.Reconcile(vessel, nil)
}
