package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/headroom/internal/calendar"
)

// ErrLowBalance is returned when a fixed item pushes the balance below the
// floor during projection. The declared catalog is infeasible; retrying
// reproduces the same failure.
var ErrLowBalance = errors.New("balance below minimum")

// LowBalanceError describes the first floor violation found by a
// projection. Ledger holds every row produced up to and including the
// offending one.
type LowBalanceError struct {
	Date    time.Time
	Item    string
	Amount  int64
	Balance int64
	Floor   int64
	Ledger  *Ledger
}

func (e *LowBalanceError) Error() string {
	return fmt.Sprintf("balance goes under minimum on %s: %s (%d) became %d, floor %d",
		calendar.Format(e.Date), e.Item, e.Amount, e.Balance, e.Floor)
}

func (e *LowBalanceError) Unwrap() error {
	return ErrLowBalance
}
