package wsdot

import (
	"strconv"
	"time"
)

// Timestamp wraps a time parsed from the WSDOT JSON date encoding,
// "/Date(1762560000000-0800)/". The zero value means the field was
// absent or unparseable.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON extracts the epoch-millisecond run from the encoded
// date. The trailing zone offset is ignored; the instant is absolute.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}

	// First run of digits is the millisecond epoch.
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	ms, err := strconv.ParseInt(s[start:end], 10, 64)
	if err != nil {
		return nil
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// TimePtr returns the parsed instant, or nil for the zero value.
func (t Timestamp) TimePtr() *time.Time {
	if t.IsZero() {
		return nil
	}
	tt := t.Time
	return &tt
}
