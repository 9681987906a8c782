package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_NowIsUTC(t *testing.T) {
	now := System{}.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestTicker_DeliversTicks(t *testing.T) {
	tk := TickerFactory{}.NewTicker(5 * time.Millisecond)
	defer tk.Stop()

	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestTicker_StopClosesDoneAndIsIdempotent(t *testing.T) {
	tk := TickerFactory{}.NewTicker(time.Millisecond)

	tk.Stop()
	tk.Stop()

	select {
	case <-tk.Done():
	default:
		t.Fatal("done channel not closed after Stop")
	}
}

func TestTicker_NoTicksAfterStop(t *testing.T) {
	tk := TickerFactory{}.NewTicker(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	tk.Stop()

	// Drain the single buffered tick, if any
	select {
	case <-tk.C():
	default:
	}

	select {
	case <-tk.C():
		t.Fatal("tick delivered after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTicker_SlowConsumerDoesNotBlockLoop(t *testing.T) {
	tk := TickerFactory{}.NewTicker(time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		tk.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Stop blocked on an undrained channel")
	}
}
