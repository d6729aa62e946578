package clock

import "time"

// Clock abstracts wall-clock access so reconciliation and progress
// logic can run against fixed instants in tests.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake is a manually advanced clock for tests.
type Fake struct {
	Current time.Time
}

func NewFake(t time.Time) *Fake { return &Fake{Current: t} }

func (f *Fake) Now() time.Time { return f.Current }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.Current = f.Current.Add(d) }

// Set jumps the fake clock to t.
func (f *Fake) Set(t time.Time) { f.Current = t }
