package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

var errDiskFull = errors.New("disk full")

// memoryStore is an in-memory ports.KeyValueStore with write failure injection
type memoryStore struct {
	data       map[string][]byte
	failDelete map[string]bool
	failPut    map[string]bool
	puts       []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data:       map[string][]byte{},
		failPut:    map[string]bool{},
		failDelete: map[string]bool{},
	}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrKeyNotFound)
	}
	return value, nil
}

func (m *memoryStore) Put(ctx context.Context, key string, value []byte) error {
	if m.failPut[key] {
		return errDiskFull
	}
	m.data[key] = append([]byte(nil), value...)
	m.puts = append(m.puts, key)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	if m.failDelete[key] {
		return errDiskFull
	}
	delete(m.data, key)
	return nil
}

var _ ports.KeyValueStore = (*memoryStore)(nil)

// fakeClock returns a manually advanced time
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeTicker never fires on its own; tests call runner.Tick directly
type fakeTicker struct {
	c       chan time.Time
	done    chan struct{}
	once    sync.Once
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time   { return t.c }
func (t *fakeTicker) Done() <-chan struct{} { return t.done }

func (t *fakeTicker) Stop() {
	t.once.Do(func() {
		t.stopped = true
		close(t.done)
	})
}

// fakeTickerFactory records every ticker it hands out
type fakeTickerFactory struct {
	tickers []*fakeTicker
}

func (f *fakeTickerFactory) NewTicker(period time.Duration) ports.Ticker {
	t := &fakeTicker{c: make(chan time.Time, 1), done: make(chan struct{})}
	f.tickers = append(f.tickers, t)
	return t
}

// running counts tickers that have not been stopped
func (f *fakeTickerFactory) running() int {
	n := 0
	for _, t := range f.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func samplePlan(id string, plannedMinutes int) domain.SessionPlan {
	return domain.SessionPlan{
		CardioMinutes:   15,
		CardioPlacement: domain.CardioEnd,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		ExerciseCount:   1,
		Exercises: []domain.Exercise{
			{ID: "ex-" + id, MuscleGroup: domain.WorkoutUpperBody, Name: "Bench Press", Reps: "8", Sets: 4},
		},
		GoalText:               "Strength",
		ID:                     id,
		PlannedDurationMinutes: plannedMinutes,
		WorkoutType:            domain.WorkoutUpperBody,
	}
}

// testEnv wires a full service graph over an in-memory store
type testEnv struct {
	clock   *fakeClock
	feed    *CommunityFeed
	gateway *PersistenceGateway
	history *RunHistory
	catalog *PlanCatalog
	state   *AppState
	store   *memoryStore
	tickers *fakeTickerFactory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemoryStore()
	return newTestEnvWithStore(t, store)
}

func newTestEnvWithStore(t *testing.T, store *memoryStore) *testEnv {
	t.Helper()
	clock := newFakeClock()
	gateway := NewPersistenceGateway(store)
	state := LoadAppState(context.Background(), gateway)
	history := NewRunHistory(state, clock)
	return &testEnv{
		catalog: NewPlanCatalog(state),
		clock:   clock,
		feed:    NewCommunityFeed(state, clock),
		gateway: gateway,
		history: history,
		state:   state,
		store:   store,
		tickers: &fakeTickerFactory{},
	}
}

func (e *testEnv) newRunner() *SessionRunner {
	return NewSessionRunner(e.state, e.history, e.clock, e.tickers)
}
