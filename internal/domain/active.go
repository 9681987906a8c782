package domain

import "time"

// ActiveSession marks the single running session.
// Its presence is what "a session is running" means.
type ActiveSession struct {
	Plan      SessionPlan
	StartTime time.Time
}

// ElapsedSeconds returns whole seconds since start, never negative
func (a ActiveSession) ElapsedSeconds(now time.Time) int {
	elapsed := int(now.Sub(a.StartTime) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// RunnerState is the lifecycle state of the session runner
type RunnerState string

const (
	RunnerActive        RunnerState = "active"
	RunnerCancelled     RunnerState = "cancelled"
	RunnerCompleted     RunnerState = "completed"
	RunnerCountdown     RunnerState = "countdown"
	RunnerIdle          RunnerState = "idle"
	RunnerStopRequested RunnerState = "stop_requested"
)

// Timed reports whether the state holds a running timer
func (s RunnerState) Timed() bool {
	return s == RunnerCountdown || s == RunnerActive
}
