// Package burntime defines the scalar used throughout eroth to represent
// the arrival time of the grassfire burn-front: either a finite Time(t)
// or Infinity for "not yet reached".
//
// BurnTime intentionally has no arithmetic operators of its own beyond
// comparison: every quantity added to a BurnTime (a segment length, a
// radius) is a plain float32, and the result is re-wrapped by the caller
// via Finite. This keeps the type a thin ordering wrapper.
package burntime

import "fmt"

// BurnTime is either Infinity or a finite, non-negative Time(t).
//
// The zero value is Infinity (finite == false), so a freshly zeroed
// BurnTime behaves like "not yet reached" without explicit initialization.
type BurnTime struct {
	finite bool
	t      float32
}

// Infinity is the burn-front-not-yet-arrived value.
var Infinity = BurnTime{}

// Finite constructs a BurnTime holding the concrete arrival time t.
func Finite(t float32) BurnTime {
	return BurnTime{finite: true, t: t}
}

// IsFinite reports whether bt holds a concrete time.
func (bt BurnTime) IsFinite() bool {
	return bt.finite
}

// Value returns the underlying time and true if bt is finite; otherwise
// it returns (0, false).
func (bt BurnTime) Value() (float32, bool) {
	if !bt.finite {
		return 0, false
	}
	return bt.t, true
}

// LessEq reports whether bt <= other under the total order
// Time(t) <= Time(t') iff t <= t', any Time(t) <= Infinity, and
// Infinity <= Infinity, but Infinity is never <= a finite Time.
func (bt BurnTime) LessEq(other BurnTime) bool {
	switch {
	case !bt.finite && !other.finite:
		return true
	case !bt.finite && other.finite:
		return false
	case bt.finite && !other.finite:
		return true
	default:
		return bt.t <= other.t
	}
}

// String implements fmt.Stringer for diagnostics and log lines.
func (bt BurnTime) String() string {
	if !bt.finite {
		return "Infinity"
	}
	return fmt.Sprintf("Time(%g)", bt.t)
}
