package progress

import (
	"testing"
	"time"
)

var pacific = func() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 10, hour, min, 0, 0, pacific)
}

func TestParseClockTime(t *testing.T) {
	base := at(t, 12, 0)

	tests := []struct {
		input    string
		wantHour int
		wantMin  int
		wantNil  bool
	}{
		{input: "10:35 AM", wantHour: 10, wantMin: 35},
		{input: "12:00 AM", wantHour: 0, wantMin: 0},
		{input: "12:30 PM", wantHour: 12, wantMin: 30},
		{input: "1:05 pm", wantHour: 13, wantMin: 5},
		{input: "  9:00 AM ", wantHour: 9, wantMin: 0},
		{input: "10:35", wantNil: true},
		{input: "25:00 PM", wantNil: true},
		{input: "10:75 AM", wantNil: true},
		{input: "ten:35 AM", wantNil: true},
		{input: "10:35 XM", wantNil: true},
		{input: "", wantNil: true},
		{input: "—", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseClockTime(tt.input, base, pacific)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseClockTime(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseClockTime(%q) = nil", tt.input)
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin {
				t.Errorf("ParseClockTime(%q) = %02d:%02d, want %02d:%02d",
					tt.input, got.Hour(), got.Minute(), tt.wantHour, tt.wantMin)
			}
		})
	}
}

func TestTransit(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		now   time.Time
		want  float64
		// wantNil means unknown, which must never degrade to 0
		wantNil bool
	}{
		{name: "halfway", start: "10:00 AM", end: "10:40 AM", now: at(t, 10, 20), want: 0.5},
		{name: "before departure clamps to 0", start: "10:00 AM", end: "10:40 AM", now: at(t, 9, 0), want: 0},
		{name: "after arrival clamps to 1", start: "10:00 AM", end: "10:40 AM", now: at(t, 11, 0), want: 1},
		{name: "eta past midnight", start: "11:50 PM", end: "12:30 AM", now: at(t, 23, 50).Add(20 * time.Minute), want: 0.5},
		{name: "unparseable start", start: "bogus", end: "10:40 AM", now: at(t, 10, 20), wantNil: true},
		{name: "unparseable end", start: "10:00 AM", end: "", now: at(t, 10, 20), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transit(tt.start, tt.end, tt.now, pacific)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Transit() = %v, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("Transit() = nil, want value")
			}
			if *got < 0 || *got > 1 {
				t.Fatalf("Transit() = %v, outside [0,1]", *got)
			}
			if diff := *got - tt.want; diff > 0.01 || diff < -0.01 {
				t.Errorf("Transit() = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestDockFraction(t *testing.T) {
	dep := at(t, 9, 0)

	arr := at(t, 8, 30)
	got := DockFraction(&arr, dep, at(t, 8, 45))
	if got == nil || *got < 0.49 || *got > 0.51 {
		t.Errorf("known arrival: DockFraction = %v, want ~0.5", got)
	}

	// Unknown arrival falls back to a 20 minute dwell ending at departure.
	got = DockFraction(nil, dep, at(t, 8, 50))
	if got == nil || *got < 0.49 || *got > 0.51 {
		t.Errorf("fallback dwell: DockFraction = %v, want ~0.5", got)
	}

	// Overnight tie-up reads against a capped 60 minute window.
	longArr := at(t, 1, 0)
	got = DockFraction(&longArr, dep, at(t, 1, 30))
	if got == nil || *got < 0.49 || *got > 0.51 {
		t.Errorf("capped dwell: DockFraction = %v, want ~0.5", got)
	}
	got = DockFraction(&longArr, dep, at(t, 5, 0))
	if got == nil || *got != 1 {
		t.Errorf("capped dwell past window: DockFraction = %v, want 1", got)
	}

	// Arrival at or after departure is an anomaly, not zero.
	bad := at(t, 9, 30)
	if got := DockFraction(&bad, dep, at(t, 9, 45)); got != nil {
		t.Errorf("inverted window: DockFraction = %v, want nil", *got)
	}

	// Before arrival clamps to 0, never negative.
	got = DockFraction(&arr, dep, at(t, 8, 0))
	if got == nil || *got != 0 {
		t.Errorf("before arrival: DockFraction = %v, want 0", got)
	}
}

func TestOccurrences(t *testing.T) {
	now := at(t, 22, 0)

	next := NextOccurrence("9:00 AM", now, pacific)
	if next == nil || !next.After(now) {
		t.Fatalf("NextOccurrence past time = %v, want tomorrow morning", next)
	}
	if next.Day() != now.Day()+1 {
		t.Errorf("NextOccurrence rolled to day %d, want %d", next.Day(), now.Day()+1)
	}

	prev := PrevOccurrence("11:00 PM", now, pacific)
	if prev == nil || prev.After(now) {
		t.Fatalf("PrevOccurrence future time = %v, want at or before now", prev)
	}

	// Within the one-minute slack no rollover happens.
	nearNow := at(t, 21, 59)
	stay := NextOccurrence("10:00 PM", nearNow, pacific)
	if stay == nil || stay.Day() != nearNow.Day() {
		t.Errorf("NextOccurrence within slack rolled over: %v", stay)
	}
}
