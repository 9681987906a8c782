package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// RunHistory owns the completed-run list and feeds new runs through scoring
type RunHistory struct {
	clock ports.Clock
	state *AppState
}

var _ ports.RunRecorder = (*RunHistory)(nil)

// NewRunHistory creates a new RunHistory
func NewRunHistory(state *AppState, clock ports.Clock) *RunHistory {
	return &RunHistory{clock: clock, state: state}
}

// Record scores the run against the existing history, then saves runs and
// profile, in that order. Recording a run id that is already stored replaces
// it instead of adding a second entry, so a retry after a failed profile
// write scores the run once.
func (h *RunHistory) Record(ctx context.Context, run domain.SessionRun) (*domain.UserProfile, error) {
	history := slices.DeleteFunc(h.state.Runs(), func(r domain.SessionRun) bool {
		return r.ID == run.ID
	})
	updated := ScoreRun(history, run, h.state.User(), h.clock.Now())

	runs := append([]domain.SessionRun{run}, history...)
	if err := h.state.SetRuns(ctx, runs); err != nil {
		return nil, err
	}
	if err := h.state.SetUser(ctx, updated); err != nil {
		return nil, err
	}

	observability.RecordRunCompleted(run)
	observability.RecordProfile(updated)

	logging.Logger.Info("Run recorded",
		"run_id", run.ID,
		"status", run.EndedStatus,
		"discipline_score", updated.DisciplineScore,
		"streak", updated.StreakCount,
		"achievements", len(updated.Achievements))
	return &updated, nil
}

// Review stores the post-session self assessment on the run.
// Scores are not recomputed.
func (h *RunHistory) Review(ctx context.Context, runID string, review domain.RunReview) (*domain.SessionRun, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}

	runs := h.state.Runs()
	for i, run := range runs {
		if run.ID != runID {
			continue
		}
		runs[i] = run.WithReview(review)
		if err := h.state.SetRuns(ctx, runs); err != nil {
			return nil, err
		}
		logging.Logger.Info("Run reviewed", "run_id", runID, "rating", review.Rating, "stars", review.Stars)
		return &runs[i], nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
}

// Get returns the run with the given id
func (h *RunHistory) Get(runID string) (*domain.SessionRun, error) {
	for _, run := range h.state.Runs() {
		if run.ID == runID {
			return &run, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
}

// List returns runs most recent first. A non-empty workoutType keeps only
// runs whose plan still exists and has that type.
func (h *RunHistory) List(workoutType domain.WorkoutType) []domain.SessionRun {
	runs := h.state.Runs()
	if workoutType == "" {
		return runs
	}

	filtered := make([]domain.SessionRun, 0, len(runs))
	for _, run := range runs {
		plan, ok := h.state.PlanByID(run.SessionPlanID)
		if ok && plan.WorkoutType == workoutType {
			filtered = append(filtered, run)
		}
	}
	return filtered
}
