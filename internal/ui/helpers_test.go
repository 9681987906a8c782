package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/storage"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type manualTicker struct {
	c    chan time.Time
	done chan struct{}
	once sync.Once
}

func (t *manualTicker) C() <-chan time.Time   { return t.c }
func (t *manualTicker) Done() <-chan struct{} { return t.done }
func (t *manualTicker) Stop()                 { t.once.Do(func() { close(t.done) }) }

type manualTickers struct{}

func (manualTickers) NewTicker(time.Duration) ports.Ticker {
	return &manualTicker{c: make(chan time.Time, 1), done: make(chan struct{})}
}

// uiEnv is a service graph over a file store in a temp dir
type uiEnv struct {
	catalog  *services.PlanCatalog
	clock    *testClock
	feed     *services.CommunityFeed
	history  *services.RunHistory
	progress *services.ProgressService
	runner   *services.SessionRunner
	state    *services.AppState
}

func newUIEnv(t *testing.T) *uiEnv {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return newUIEnvWithStore(t, store)
}

func newUIEnvWithStore(t *testing.T, store ports.KeyValueStore) *uiEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)}
	state := services.LoadAppState(context.Background(), services.NewPersistenceGateway(store))
	history := services.NewRunHistory(state, clock)
	return &uiEnv{
		catalog:  services.NewPlanCatalog(state),
		clock:    clock,
		feed:     services.NewCommunityFeed(state, clock),
		history:  history,
		progress: services.NewProgressService(state, history),
		runner:   services.NewSessionRunner(state, history, clock, manualTickers{}),
		state:    state,
	}
}

var errStoreOffline = errors.New("store offline")

// noDeleteStore fails every Delete
type noDeleteStore struct {
	ports.KeyValueStore
}

func (noDeleteStore) Delete(context.Context, string) error { return errStoreOffline }

func testPlan() domain.SessionPlan {
	return domain.SessionPlan{
		CardioMinutes:   10,
		CardioPlacement: domain.CardioEnd,
		ExerciseCount:   2,
		Exercises: []domain.Exercise{
			{ID: "ex-1", MuscleGroup: domain.WorkoutUpperBody, Name: "Bench Press", Reps: "8", Sets: 2},
			{ID: "ex-2", MuscleGroup: domain.WorkoutUpperBody, Name: "Pull Up", Reps: "max", Sets: 1},
		},
		GoalText:               "Strength",
		ID:                     "plan-1",
		PlannedDurationMinutes: 60,
		WorkoutType:            domain.WorkoutUpperBody,
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// isQuit reports whether cmd produces tea.QuitMsg
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
