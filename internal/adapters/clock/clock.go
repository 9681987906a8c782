package clock

import (
	"sync"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// System reads the wall clock in UTC
type System struct{}

var _ ports.Clock = System{}

// Now implements ports.Clock
func (System) Now() time.Time {
	return time.Now().UTC()
}

// TickerFactory starts goroutine-backed tickers
type TickerFactory struct{}

var _ ports.TickerFactory = TickerFactory{}

// NewTicker implements ports.TickerFactory
func (TickerFactory) NewTicker(period time.Duration) ports.Ticker {
	t := &ticker{
		c:       make(chan time.Time, 1),
		done:    make(chan struct{}),
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go t.loop(period)
	return t
}

// ticker forwards time.Ticker ticks until stopped.
// Slow consumers miss ticks instead of queueing them.
type ticker struct {
	c       chan time.Time
	done    chan struct{}
	once    sync.Once
	stopCh  chan struct{}
	stopped chan struct{}
}

func (t *ticker) C() <-chan time.Time {
	return t.c
}

func (t *ticker) Done() <-chan struct{} {
	return t.done
}

// Stop halts the loop and waits for it to exit
func (t *ticker) Stop() {
	t.once.Do(func() {
		close(t.stopCh)
		<-t.stopped
		close(t.done)
	})
}

func (t *ticker) loop(period time.Duration) {
	defer close(t.stopped)

	tk := time.NewTicker(period)
	defer tk.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case now := <-tk.C:
			select {
			case t.c <- now.UTC():
			default:
			}
		}
	}
}
