// Package engine owns the poll cycle: fetch, normalize, reconcile,
// publish. One goroutine runs the cycle; readers get an immutable
// snapshot with time-derived fractions recomputed at read time, so a
// display can tick between polls without touching reconciler state.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/abw750/ferry-clock/internal/clock"
	"github.com/abw750/ferry-clock/internal/feed"
	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/sticky"
	"github.com/abw750/ferry-clock/internal/store"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

// staleWindow is how long a snapshot may age before it is flagged.
const staleWindow = 10 * time.Minute

// Options configures an Engine. Client, Store, and Route are required;
// the rest default sensibly.
type Options struct {
	Route        models.RouteSelection
	Location     *time.Location
	PollInterval time.Duration

	Client wsdot.Client
	Store  store.Store
	Clock  clock.Clock
	Logger *slog.Logger
}

// Engine reconciles poll cycles into canonical display state.
type Engine struct {
	route    models.RouteSelection
	loc      *time.Location
	interval time.Duration

	client wsdot.Client
	clk    clock.Clock
	log    *slog.Logger

	norm       *feed.Normalizer
	continuity *ContinuityTracker
	dock       *DockTracker
	slots      *SlotMap
	selector   *rowSelector
	capacity   *sticky.CapacityCache
	etas       *sticky.EtaCache
	build      *builder

	force chan struct{}

	mu        sync.RWMutex
	slotState [2]*models.SlotState
	capWest   models.TerminalCapacity
	capEast   models.TerminalCapacity
	rows      []models.VesselObservation
	live      []models.LivePosition
	fetchedAt time.Time
	lastErr   string
}

// New builds an engine from options.
func New(opts Options) *Engine {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	crossing := time.Duration(opts.Route.CrossingMinutes) * time.Minute
	snaps := sticky.NewDockSnapshotCache(opts.Store, opts.Clock.Now, opts.Location)

	return &Engine{
		route:    opts.Route,
		loc:      opts.Location,
		interval: opts.PollInterval,
		client:   opts.Client,
		clk:      opts.Clock,
		log:      opts.Logger,

		norm: feed.NewNormalizer([]feed.Terminal{
			{ID: opts.Route.TerminalIDWest, Name: opts.Route.TerminalNameWest},
			{ID: opts.Route.TerminalIDEast, Name: opts.Route.TerminalNameEast},
		}, opts.Location),
		continuity: NewContinuityTracker(crossing),
		dock:       NewDockTracker(),
		slots:      NewSlotMap(opts.Store),
		selector:   &rowSelector{snaps: snaps, loc: opts.Location},
		capacity:   sticky.NewCapacityCache(opts.Store, opts.Clock.Now),
		etas:       sticky.NewEtaCache(opts.Clock.Now),
		build: &builder{
			route:    opts.Route,
			loc:      opts.Location,
			crossing: crossing,
		},

		force: make(chan struct{}, 1),
	}
}

// Run polls until the context is canceled. The first cycle fires
// immediately so a fresh process has data before the first tick.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.PollOnce(ctx); err != nil {
		e.log.Error("poll failed", "error", err)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-e.force:
		}
		if err := e.PollOnce(ctx); err != nil {
			e.log.Error("poll failed", "error", err)
		}
	}
}

// ForcePoll requests an immediate cycle. Coalesces when one is already
// pending.
func (e *Engine) ForcePoll() {
	select {
	case e.force <- struct{}{}:
	default:
	}
}

// PollOnce runs a single fetch-and-reconcile cycle. On fetch failure
// the previous snapshot stays in place; only the staleness clock keeps
// running against it.
func (e *Engine) PollOnce(ctx context.Context) error {
	data, err := wsdot.FetchCycle(ctx, e.client, e.route.RouteID, []int{
		e.route.TerminalIDWest,
		e.route.TerminalIDEast,
	})
	now := e.clk.Now()
	if err != nil {
		e.mu.Lock()
		e.lastErr = err.Error()
		e.mu.Unlock()
		return err
	}

	res := e.norm.Normalize(data, now)

	// Vessels that vanished mid-crossing contribute synthesized
	// arrivals; real ones always win.
	synthesized, armed := e.continuity.Advance(res.Live, now)
	for _, name := range armed {
		e.log.Info("synthesized arrival", "vessel", name, "at", synthesized[name])
	}

	e.dock.Update(res.Observations, res.Live, res.Arrivals, synthesized, now)

	for i := range res.Observations {
		e.selector.snaps.Upsert(&res.Observations[i])
	}

	e.slots.Assign(res.Observations)
	picked := e.selector.Select(res.Observations, e.slots.Vessels(), now)

	var slotState [2]*models.SlotState
	for i, obs := range picked {
		if obs == nil {
			continue
		}
		eta := e.etas.Reconcile(obs.Vessel, obs.EstimatedArrival, obs.Underway())
		slotState[i] = e.build.slotState(obs, e.dock.Get(obs.Vessel), res.Live, eta, now)
	}

	capWest := e.reconcileCapacity("west", e.route.TerminalIDWest, res.Observations)
	capEast := e.reconcileCapacity("east", e.route.TerminalIDEast, res.Observations)

	live := make([]models.LivePosition, 0, len(res.Live.ByVessel))
	for _, pos := range res.Live.ByVessel {
		live = append(live, pos)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].Vessel < live[j].Vessel })

	e.mu.Lock()
	e.slotState = slotState
	e.capWest = capWest
	e.capEast = capEast
	e.rows = res.Observations
	e.live = live
	e.fetchedAt = now
	e.lastErr = ""
	e.mu.Unlock()

	e.log.Info("cycle complete",
		"rows", len(res.Observations),
		"live", len(res.Live.ByVessel),
		"arrivals", len(res.Arrivals))
	return nil
}

func (e *Engine) reconcileCapacity(side string, terminalID int, rows []models.VesselObservation) models.TerminalCapacity {
	var total, avail *int
	for i := range rows {
		if rows[i].OriginTerminalID == terminalID {
			total = rows[i].CarSlotsTotal
			avail = rows[i].CarSlotsAvailable
			break
		}
	}

	outTotal, outAvail, fresh := e.capacity.Reconcile(side, total, avail)
	return models.TerminalCapacity{
		TerminalID: terminalID,
		Total:      outTotal,
		Available:  outAvail,
		Fresh:      fresh,
	}
}

// State returns the canonical snapshot, or nil before the first
// successful cycle. Fractions are recomputed against the current
// instant; everything else is the last cycle's reconciled output.
func (e *Engine) State() *models.CanonicalState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.fetchedAt.IsZero() {
		return nil
	}
	now := e.clk.Now()

	st := &models.CanonicalState{
		Route:        e.route,
		CapacityWest: e.capWest,
		CapacityEast: e.capEast,
		FetchedAt:    e.fetchedAt,
		Stale:        now.Sub(e.fetchedAt) > staleWindow,
	}
	for i, s := range e.slotState {
		c := cloneSlot(s)
		e.build.refresh(c, now)
		st.Slots[i] = c
	}
	return st
}

// Status reports the most recent cycle for observability endpoints.
func (e *Engine) Status() models.FetchStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := models.FetchStatus{LastError: e.lastErr, Rows: len(e.rows)}
	if !e.fetchedAt.IsZero() {
		t := e.fetchedAt
		st.LastFetchedAt = &t
	}
	return st
}

// Summary returns the last cycle's normalized rows.
func (e *Engine) Summary() []models.VesselObservation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.VesselObservation, len(e.rows))
	copy(out, e.rows)
	return out
}

// LivePositions returns the last cycle's vessel positions, sorted by
// vessel name.
func (e *Engine) LivePositions() []models.LivePosition {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.LivePosition, len(e.live))
	copy(out, e.live)
	return out
}
