// Package progress turns local clock-face times into clamped 0..1
// completion fractions for the transit bar and dock gauge. Every
// function takes an explicit "now" so the math is deterministic.
package progress

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDwell approximates a dock stay when no arrival is known.
	DefaultDwell = 20 * time.Minute

	// MaxDisplayDwell caps how much dock time the gauge represents.
	MaxDisplayDwell = 60 * time.Minute

	rollSlack = time.Minute
)

// ParseClockTime parses "3:04 PM" onto the day of base in loc. Returns
// nil for anything malformed.
func ParseClockTime(s string, base time.Time, loc *time.Location) *time.Time {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) < 2 {
		return nil
	}

	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return nil
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return nil
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return nil
	}
	if h < 1 || h > 12 || m < 0 || m > 59 {
		return nil
	}

	switch strings.ToUpper(parts[1]) {
	case "PM":
		if h != 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	default:
		return nil
	}

	base = base.In(loc)
	t := time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, loc)
	return &t
}

// NextOccurrence resolves s to its next occurrence: today's instant,
// rolled to tomorrow once it is more than a minute in the past.
func NextOccurrence(s string, now time.Time, loc *time.Location) *time.Time {
	t := ParseClockTime(s, now, loc)
	if t == nil {
		return nil
	}
	out := *t
	if out.Before(now.Add(-rollSlack)) {
		out = out.Add(24 * time.Hour)
	}
	return &out
}

// PrevOccurrence resolves s to its most recent occurrence at or before
// now, rolling to yesterday when the instant sits in the future.
func PrevOccurrence(s string, now time.Time, loc *time.Location) *time.Time {
	t := ParseClockTime(s, now, loc)
	if t == nil {
		return nil
	}
	out := *t
	if out.After(now.Add(rollSlack)) {
		out = out.Add(-24 * time.Hour)
	}
	if out.After(now) {
		out = now.Add(-time.Second)
	}
	return &out
}

// Transit returns the completion fraction of a crossing anchored on two
// clock strings. The end anchor rolls forward a day when it does not
// sit strictly after the start (ETA past midnight). Returns nil, never
// 0, when either anchor fails to parse or the interval collapses.
func Transit(startStr, endStr string, now time.Time, loc *time.Location) *float64 {
	start := ParseClockTime(startStr, now, loc)
	end := ParseClockTime(endStr, now, loc)
	if start == nil || end == nil {
		return nil
	}

	a, b := *start, *end
	if !b.After(a) {
		b = b.Add(24 * time.Hour)
	}
	if !b.After(a) {
		return nil
	}

	f := Clamp01(float64(now.Sub(a)) / float64(b.Sub(a)))
	return &f
}

// DockFraction returns how far through its dock stay a vessel is, as a
// fraction of the dwell window [arrival, departure]. A nil arrival
// falls back to departure minus DefaultDwell. The window is capped at
// MaxDisplayDwell so an overnight tie-up still reads as a full gauge.
// Returns nil when the window is not positive.
func DockFraction(arrival *time.Time, departure time.Time, now time.Time) *float64 {
	a := departure.Add(-DefaultDwell)
	if arrival != nil {
		a = *arrival
	}
	if !departure.After(a) {
		return nil
	}

	dwell := departure.Sub(a)
	if dwell > MaxDisplayDwell {
		dwell = MaxDisplayDwell
	}

	elapsed := now.Sub(a)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > dwell {
		elapsed = dwell
	}

	f := float64(elapsed) / float64(dwell)
	return &f
}

// Clamp01 pins x to [0, 1].
func Clamp01(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x
}
