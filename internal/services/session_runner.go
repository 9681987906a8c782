package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

const (
	// CountdownSeconds is the countdown length before a new session goes Active
	CountdownSeconds = 3
	// TickPeriod is how often the runner expects Tick to be called
	TickPeriod = time.Second
)

// SessionRunner drives one execution of a plan:
//
//	Idle -> Countdown(3) -> Active <-> StopRequested -> Completed
//	any state but Completed -> Cancelled
//
// The runner owns a ticker handle while it is in Countdown or Active and
// releases it on every transition out of those states. It must be driven
// from a single goroutine.
type SessionRunner struct {
	clock     ports.Clock
	countdown int
	elapsed   int
	lastRun   *domain.SessionRun
	pending   *domain.SessionRun
	recorder  ports.RunRecorder
	state     *AppState
	status    domain.RunnerState
	ticker    ports.Ticker
	tickers   ports.TickerFactory
}

// NewSessionRunner creates a runner. When the state holds an active session
// the runner resumes straight into Active without replaying the countdown.
func NewSessionRunner(state *AppState, recorder ports.RunRecorder, clock ports.Clock, tickers ports.TickerFactory) *SessionRunner {
	r := &SessionRunner{
		clock:    clock,
		recorder: recorder,
		state:    state,
		status:   domain.RunnerIdle,
		tickers:  tickers,
	}

	if active := state.Active(); active != nil {
		r.status = domain.RunnerActive
		r.elapsed = active.ElapsedSeconds(clock.Now())
		r.acquireTimer()
		logging.Logger.Info("Resumed active session",
			"plan_id", active.Plan.ID,
			"elapsed_seconds", r.elapsed)
	}

	return r
}

// Start begins a session for plan. Fails with ErrInvalidState if one is already active.
func (r *SessionRunner) Start(ctx context.Context, plan domain.SessionPlan) error {
	if active := r.state.Active(); active != nil {
		return fmt.Errorf("%w: session for plan %s is already active", domain.ErrInvalidState, active.Plan.ID)
	}
	if r.status.Timed() || r.status == domain.RunnerStopRequested {
		return fmt.Errorf("%w: cannot start from %s", domain.ErrInvalidState, r.status)
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	active := domain.ActiveSession{
		Plan:      plan,
		StartTime: r.clock.Now().Truncate(time.Millisecond),
	}
	if err := r.state.SetActive(ctx, active); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	r.status = domain.RunnerCountdown
	r.countdown = CountdownSeconds
	r.elapsed = 0
	r.lastRun = nil
	r.pending = nil
	r.acquireTimer()

	logging.Logger.Info("Session started", "plan_id", plan.ID, "planned_minutes", plan.PlannedDurationMinutes)
	return nil
}

// Tick advances the countdown or refreshes the elapsed time.
// Ticks outside Countdown and Active are ignored.
func (r *SessionRunner) Tick() {
	switch r.status {
	case domain.RunnerCountdown:
		r.countdown--
		if r.countdown <= 0 {
			r.countdown = 0
			r.status = domain.RunnerActive
			logging.Logger.Debug("Countdown finished")
		}
		r.refreshElapsed()
	case domain.RunnerActive:
		r.refreshElapsed()
	default:
		logging.Logger.Debug("Ignoring tick outside timed states", "state", r.status)
	}
}

// RequestStop moves Active to StopRequested so the caller can confirm
func (r *SessionRunner) RequestStop() error {
	if r.status != domain.RunnerActive {
		return fmt.Errorf("%w: cannot request stop from %s", domain.ErrInvalidState, r.status)
	}
	r.refreshElapsed()
	r.releaseTimer()
	r.status = domain.RunnerStopRequested
	return nil
}

// CancelStopRequest returns to Active
func (r *SessionRunner) CancelStopRequest() error {
	if r.status != domain.RunnerStopRequested {
		return fmt.Errorf("%w: no stop request pending (state %s)", domain.ErrInvalidState, r.status)
	}
	r.status = domain.RunnerActive
	r.refreshElapsed()
	r.acquireTimer()
	return nil
}

// ConfirmStop classifies the session, hands the run to the recorder and
// clears the active session. Legal from StopRequested or Active.
func (r *SessionRunner) ConfirmStop(ctx context.Context) (domain.SessionRun, error) {
	if r.status != domain.RunnerStopRequested && r.status != domain.RunnerActive {
		return domain.SessionRun{}, fmt.Errorf("%w: cannot stop from %s", domain.ErrInvalidState, r.status)
	}
	active := r.state.Active()
	if active == nil {
		return domain.SessionRun{}, fmt.Errorf("%w: no active session", domain.ErrInvalidState)
	}

	// A retry after a failed record reuses the run built on the first attempt.
	run := r.pending
	if run == nil {
		now := r.clock.Now()
		elapsed := active.ElapsedSeconds(now)
		planned := active.Plan.PlannedSeconds()
		endTime := now

		run = &domain.SessionRun{
			ActualDurationSeconds:  elapsed,
			CreatedAt:              now,
			EndTime:                &endTime,
			EndedStatus:            domain.ClassifyRun(elapsed, planned),
			ID:                     uuid.New().String(),
			OvertimeSeconds:        domain.OvertimeSeconds(elapsed, planned),
			PlannedDurationMinutes: active.Plan.PlannedDurationMinutes,
			SessionPlanID:          active.Plan.ID,
			StartTime:              active.StartTime,
		}
		r.pending = run
	}
	elapsed := run.ActualDurationSeconds

	if r.recorder != nil {
		if _, err := r.recorder.Record(ctx, *run); err != nil {
			return domain.SessionRun{}, fmt.Errorf("failed to record run: %w", err)
		}
	}
	r.pending = nil

	// The run is already recorded; a failed clear must not lead to a second record.
	if err := r.state.ClearActive(ctx); err != nil {
		logging.Logger.Error("Failed to clear active session after stop", "error", err, "run_id", run.ID)
	}

	r.releaseTimer()
	r.status = domain.RunnerCompleted
	r.elapsed = elapsed
	r.lastRun = run

	logging.Logger.Info("Session completed",
		"run_id", run.ID,
		"status", run.EndedStatus,
		"elapsed_seconds", elapsed,
		"overtime_seconds", run.OvertimeSeconds)
	return *run, nil
}

// Cancel discards the session without producing a run.
// The timer is stopped before Cancel returns.
func (r *SessionRunner) Cancel(ctx context.Context) error {
	if r.status == domain.RunnerCompleted {
		return fmt.Errorf("%w: session already completed", domain.ErrInvalidState)
	}

	r.releaseTimer()
	r.pending = nil
	hadSession := r.state.Active() != nil
	err := r.state.ClearActive(ctx)
	r.status = domain.RunnerCancelled

	if hadSession {
		observability.RecordRunCancelled()
		logging.Logger.Info("Session cancelled")
	}
	if err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}
	return nil
}

// Close releases the timer without changing state; a running session stays
// persisted and resumes on the next start.
func (r *SessionRunner) Close() {
	r.releaseTimer()
}

// State returns the current lifecycle state
func (r *SessionRunner) State() domain.RunnerState {
	return r.status
}

// Countdown returns the remaining countdown seconds
func (r *SessionRunner) Countdown() int {
	return r.countdown
}

// ElapsedSeconds returns the elapsed time as of the last tick or transition
func (r *SessionRunner) ElapsedSeconds() int {
	return r.elapsed
}

// Active returns the running session, or nil
func (r *SessionRunner) Active() *domain.ActiveSession {
	return r.state.Active()
}

// OvertimeSeconds is the live overtime against the active plan
func (r *SessionRunner) OvertimeSeconds() int {
	active := r.state.Active()
	if active == nil {
		return 0
	}
	return domain.OvertimeSeconds(r.elapsed, active.Plan.PlannedSeconds())
}

// LastRun returns the run produced by the last ConfirmStop, or nil
func (r *SessionRunner) LastRun() *domain.SessionRun {
	return r.lastRun
}

// Ticker returns the current timer handle, nil outside Countdown and Active
func (r *SessionRunner) Ticker() ports.Ticker {
	return r.ticker
}

func (r *SessionRunner) refreshElapsed() {
	if active := r.state.Active(); active != nil {
		r.elapsed = active.ElapsedSeconds(r.clock.Now())
	}
}

func (r *SessionRunner) acquireTimer() {
	if r.ticker != nil || r.tickers == nil {
		return
	}
	r.ticker = r.tickers.NewTicker(TickPeriod)
}

func (r *SessionRunner) releaseTimer() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	r.ticker = nil
}
