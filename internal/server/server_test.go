package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abw750/ferry-clock/internal/clock"
	"github.com/abw750/ferry-clock/internal/engine"
	"github.com/abw750/ferry-clock/internal/models"
	"github.com/abw750/ferry-clock/internal/store"
	"github.com/abw750/ferry-clock/internal/wsdot"
)

type stubClient struct {
	sched  *wsdot.Schedule
	locs   []wsdot.VesselLocation
	routes []wsdot.Route
	err    error
}

func (c *stubClient) ScheduleToday(context.Context, int) (*wsdot.Schedule, error) {
	return c.sched, c.err
}
func (c *stubClient) VesselLocations(context.Context) ([]wsdot.VesselLocation, error) {
	return c.locs, c.err
}
func (c *stubClient) TerminalSpace(context.Context, int, int) ([]wsdot.TerminalSpace, error) {
	return nil, c.err
}
func (c *stubClient) VesselStats(context.Context) ([]wsdot.VesselStat, error) {
	return nil, c.err
}
func (c *stubClient) Routes(context.Context) ([]wsdot.Route, error) {
	return c.routes, c.err
}

func testRoute() models.RouteSelection {
	return models.RouteSelection{
		Description:      "Seattle / Bainbridge Island",
		RouteID:          5,
		CrossingMinutes:  35,
		TerminalIDWest:   3,
		TerminalIDEast:   7,
		TerminalNameWest: "Bainbridge Island",
		TerminalNameEast: "Seattle",
	}
}

func newTestServer(c *stubClient) (*Server, *engine.Engine) {
	eng := engine.New(engine.Options{
		Route:    testRoute(),
		Location: time.UTC,
		Client:   c,
		Store:    store.NewMemory(),
		Clock:    clock.NewFake(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)),
	})
	return New(eng, c, testRoute(), nil), eng
}

func TestStateBeforeFirstCycle(t *testing.T) {
	srv, _ := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("missing Cache-Control header")
	}
}

func TestStateAfterCycle(t *testing.T) {
	c := &stubClient{
		sched: &wsdot.Schedule{TerminalCombos: []wsdot.TerminalCombo{{
			DepartingTerminalID: 3,
			ArrivingTerminalID:  7,
			Times: []wsdot.SailingTime{{
				DepartingTime: wsdot.Timestamp{Time: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)},
				VesselName:    "Tacoma",
			}},
		}}},
	}
	srv, eng := newTestServer(c)
	if err := eng.PollOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var st models.CanonicalState
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Route.RouteID != 5 {
		t.Errorf("route id = %d", st.Route.RouteID)
	}
	if st.Slots[0] == nil || st.Slots[0].Vessel != "Tacoma" {
		t.Errorf("slot 0 = %+v", st.Slots[0])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var st models.FetchStatus
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.LastFetchedAt != nil || st.Rows != 0 {
		t.Errorf("fresh status = %+v", st)
	}
}

func TestRoutesFallsBackToConfigured(t *testing.T) {
	srv, _ := newTestServer(&stubClient{err: errors.New("upstream down")})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/routes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var routes []routeEntry
	if err := json.NewDecoder(rec.Body).Decode(&routes); err != nil {
		t.Fatal(err)
	}
	if len(routes) != 1 || routes[0].RouteID != 5 || len(routes[0].Terminals) != 2 {
		t.Fatalf("fallback routes = %+v", routes)
	}
}

func TestRefreshRequiresPost(t *testing.T) {
	srv, _ := newTestServer(&stubClient{})
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/refresh", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/refresh = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST /api/refresh = %d, want 202", rec.Code)
	}
}

func TestPeekEndpoint(t *testing.T) {
	left := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := &stubClient{
		sched: &wsdot.Schedule{},
		locs: []wsdot.VesselLocation{{
			VesselName:          "Tacoma",
			DepartingTerminalID: 3,
			ArrivingTerminalID:  7,
			LeftDock:            wsdot.Timestamp{Time: left},
		}},
	}
	srv, eng := newTestServer(c)
	if err := eng.PollOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/peek", nil))

	var peek []peekEntry
	if err := json.NewDecoder(rec.Body).Decode(&peek); err != nil {
		t.Fatal(err)
	}
	if len(peek) != 1 || peek[0].VesselName != "Tacoma" || peek[0].LeftDock == nil {
		t.Fatalf("peek = %+v", peek)
	}
}
