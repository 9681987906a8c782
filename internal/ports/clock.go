package ports

import "time"

// Clock supplies the current wall-clock time
type Clock interface {
	Now() time.Time
}

// Ticker is a scheduled-task handle delivering at most one pending tick per period.
// Stop is idempotent and returns only after the schedule is torn down; Done is
// closed at that point so waiters on C can bail out.
type Ticker interface {
	C() <-chan time.Time
	Done() <-chan struct{}
	Stop()
}

// TickerFactory starts a new Ticker
type TickerFactory interface {
	NewTicker(period time.Duration) Ticker
}
