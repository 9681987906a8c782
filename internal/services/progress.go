package services

import (
	"math"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// ProgressSummary aggregates the run history for display
type ProgressSummary struct {
	AverageSessionMinutes int
	DisciplineScore       int
	StatusCounts          map[domain.EndedStatus]int
	StreakCount           int
	TotalCardioMinutes    int
	WeeklyCompleted       int
	WeeklyTarget          int
	WorkoutCount          int
}

// WeeklyPercent is progress towards the weekly target, capped at 100
func (s ProgressSummary) WeeklyPercent() int {
	if s.WeeklyTarget <= 0 {
		return 0
	}
	return min(100, s.WeeklyCompleted*100/s.WeeklyTarget)
}

// ProgressService computes read-only statistics
type ProgressService struct {
	history *RunHistory
	state   *AppState
}

// NewProgressService creates a new ProgressService
func NewProgressService(state *AppState, history *RunHistory) *ProgressService {
	return &ProgressService{history: history, state: state}
}

// Summary computes statistics for runs of workoutType (all runs when empty).
// The weekly count always covers every workout type.
func (p *ProgressService) Summary(now time.Time, workoutType domain.WorkoutType) ProgressSummary {
	user := p.state.User()
	runs := p.history.List(workoutType)

	summary := ProgressSummary{
		DisciplineScore: user.DisciplineScore,
		StatusCounts: map[domain.EndedStatus]int{
			domain.StatusEarly:  0,
			domain.StatusOnTime: 0,
			domain.StatusLate:   0,
		},
		StreakCount:  user.StreakCount,
		WeeklyTarget: user.WeeklyGoalTarget,
		WorkoutCount: len(runs),
	}

	totalSeconds := 0
	for _, run := range runs {
		totalSeconds += run.ActualDurationSeconds
		summary.StatusCounts[run.EndedStatus]++
		if plan, ok := p.state.PlanByID(run.SessionPlanID); ok {
			summary.TotalCardioMinutes += plan.CardioMinutes
		}
	}
	if len(runs) > 0 {
		summary.AverageSessionMinutes = int(math.Round(float64(totalSeconds) / float64(len(runs)) / 60))
	}

	weekStart := StartOfWeek(now)
	for _, run := range p.state.Runs() {
		if !run.CreatedAt.Before(weekStart) {
			summary.WeeklyCompleted++
		}
	}

	return summary
}

// StartOfWeek returns Monday 00:00 of the week containing t, in t's location
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -daysSinceMonday)
}
