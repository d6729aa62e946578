package engine

import (
	"encoding/json"

	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/store"
)

const slotStoreKey = "slots"

// SlotMap is the stable vessel-to-slot assignment: slot 0 is the top
// lane, slot 1 the bottom. Once a vessel lands in a slot it keeps it
// for as long as the mapping survives, including across restarts, so
// the two dials never trade places.
type SlotMap struct {
	byVessel map[string]int
	st       store.Store
}

// NewSlotMap builds the map and reloads any persisted assignment.
func NewSlotMap(st store.Store) *SlotMap {
	m := &SlotMap{byVessel: make(map[string]int), st: st}
	m.load()
	return m
}

// Assign gives each not-yet-mapped vessel in rows the lowest free slot,
// in row order. When both slots are taken the vessel stays unmapped
// rather than evicting a holder.
func (m *SlotMap) Assign(rows []models.VesselObservation) {
	changed := false
	for i := range rows {
		v := rows[i].Vessel
		if v == "" {
			continue
		}
		if s, ok := m.byVessel[v]; ok && (s == 0 || s == 1) {
			continue
		}

		used := [2]bool{}
		for _, s := range m.byVessel {
			if s == 0 || s == 1 {
				used[s] = true
			}
		}
		switch {
		case !used[0]:
			m.byVessel[v] = 0
			changed = true
		case !used[1]:
			m.byVessel[v] = 1
			changed = true
		}
	}
	if changed {
		m.save()
	}
}

// Vessels returns the current slot holders; an empty string means the
// slot is unassigned.
func (m *SlotMap) Vessels() [2]string {
	var out [2]string
	for v, s := range m.byVessel {
		if s == 0 || s == 1 {
			out[s] = v
		}
	}
	return out
}

func (m *SlotMap) load() {
	if m.st == nil {
		return
	}
	raw, ok, err := m.st.Get(slotStoreKey)
	if err != nil || !ok {
		return
	}
	var saved map[string]int
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return
	}
	for v, s := range saved {
		if s == 0 || s == 1 {
			m.byVessel[v] = s
		}
	}
}

func (m *SlotMap) save() {
	if m.st == nil {
		return
	}
	raw, err := json.Marshal(m.byVessel)
	if err != nil {
		return
	}
	_ = m.st.Set(slotStoreKey, string(raw))
}
