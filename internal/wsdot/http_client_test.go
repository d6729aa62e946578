package wsdot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClientWithBase(srv.URL, "test-key", 2*time.Second)
}

func TestScheduleTodayObjectShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apiaccesscode"); got != "test-key" {
			t.Errorf("apiaccesscode = %q", got)
		}
		w.Write([]byte(`{"TerminalCombos":[{"DepartingTerminalID":3,"ArrivingTerminalID":7,
			"Times":[{"DepartingTime":"/Date(1767034800000-0800)/","VesselName":"Tacoma"}]}]}`))
	})

	sched, err := c.ScheduleToday(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sched.TerminalCombos) != 1 {
		t.Fatalf("combos = %d", len(sched.TerminalCombos))
	}
	combo := sched.TerminalCombos[0]
	if combo.DepartingTerminalID != 3 || len(combo.Times) != 1 {
		t.Fatalf("combo = %+v", combo)
	}
	if combo.Times[0].DepartingTime.IsZero() {
		t.Error("departing time did not parse")
	}
}

func TestScheduleTodayArrayShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"TerminalCombos":[{"DepartingTerminalID":7,"ArrivingTerminalID":3,"Times":[]}]}]`))
	})

	sched, err := c.ScheduleToday(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sched.TerminalCombos) != 1 || sched.TerminalCombos[0].DepartingTerminalID != 7 {
		t.Fatalf("schedule = %+v", sched)
	}
}

func TestVesselLocationsSynonyms(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"VesselName":"Tacoma","OriginTerminalID":3,"DestinationTerminalID":7,
			"DepartedUTC":"/Date(1767034800000-0800)/","Status":"Docked"}]`))
	})

	locs, err := c.VesselLocations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 1 {
		t.Fatalf("locations = %d", len(locs))
	}
	l := locs[0]
	if l.DepTerminalID() != 3 || l.ArrTerminalID() != 7 {
		t.Errorf("terminals = %d/%d", l.DepTerminalID(), l.ArrTerminalID())
	}
	if l.BestLeftDock() == nil {
		t.Error("DepartedUTC not resolved as departure")
	}
	if !l.IsAtDock() {
		t.Error("Status Docked not folded into IsAtDock")
	}
}

func TestTerminalSpaceQueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("terminalid") != "3" || q.Get("route") != "5" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`[{"TerminalID":3,"DepartingSpaces":[]}]`))
	})

	spaces, err := c.TerminalSpace(context.Background(), 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(spaces) != 1 || spaces[0].TerminalID != 3 {
		t.Fatalf("spaces = %+v", spaces)
	}
}

func TestGetNonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	if _, err := c.VesselStats(context.Background()); err == nil {
		t.Fatal("expected error on 502")
	}
}
