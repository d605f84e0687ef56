package ledger

import (
	"fmt"
	"time"
)

// GraceMode selects how the floor behaves on or before the grace cutoff.
type GraceMode string

const (
	// GraceZeroFloor relaxes the floor to 0 during the grace period.
	GraceZeroFloor GraceMode = "zero_floor"
	// GraceDisabled skips the check entirely during the grace period.
	GraceDisabled GraceMode = "disabled"
)

// Policy is the minimum-balance rule applied after negative amounts.
type Policy struct {
	Minimum int64
	// GraceUntil is the last day of the grace period. Zero means none.
	GraceUntil time.Time
	GraceMode  GraceMode
}

// Floor returns the minimum balance in force on day, and false when no
// check applies at all.
func (p Policy) Floor(day time.Time) (int64, bool) {
	if p.GraceUntil.IsZero() || day.After(p.GraceUntil) {
		return p.Minimum, true
	}
	if p.GraceMode == GraceDisabled {
		return 0, false
	}
	return 0, true
}

// Acceptable reports whether balance is allowed after applying amount on
// day. Non-negative amounts are always acceptable.
func (p Policy) Acceptable(balance int64, day time.Time, amount int64) bool {
	if amount >= 0 {
		return true
	}
	floor, checked := p.Floor(day)
	if !checked {
		return true
	}
	return balance >= floor
}

// Validate rejects unknown grace modes.
func (p Policy) Validate() error {
	switch p.GraceMode {
	case "", GraceZeroFloor, GraceDisabled:
		return nil
	default:
		return fmt.Errorf("unknown grace mode %q", p.GraceMode)
	}
}
