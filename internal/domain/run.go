package domain

import (
	"fmt"
	"time"
)

// EndedStatus classifies a completed run against its planned duration
type EndedStatus string

const (
	StatusEarly  EndedStatus = "EARLY"
	StatusLate   EndedStatus = "LATE"
	StatusOnTime EndedStatus = "ON_TIME"
)

// Status symbols
const (
	SymbolEarly  = "◀"
	SymbolLate   = "▶"
	SymbolOnTime = "●"
)

// ToleranceSeconds is the half-width of the on-time band around the planned duration
const ToleranceSeconds = 120

// Review bounds
const (
	MaxSelfRating = 10
	MaxStars      = 5
)

// ClassifyRun returns the ended status for an elapsed time against a target.
// Both bounds of the tolerance band are inclusive.
func ClassifyRun(elapsedSeconds, plannedSeconds int) EndedStatus {
	switch {
	case elapsedSeconds < plannedSeconds-ToleranceSeconds:
		return StatusEarly
	case elapsedSeconds > plannedSeconds+ToleranceSeconds:
		return StatusLate
	default:
		return StatusOnTime
	}
}

// OvertimeSeconds is measured against the exact target, not the tolerance band
func OvertimeSeconds(elapsedSeconds, plannedSeconds int) int {
	return max(0, elapsedSeconds-plannedSeconds)
}

// Symbol returns the display glyph for the status
func (s EndedStatus) Symbol() string {
	switch s {
	case StatusEarly:
		return SymbolEarly
	case StatusLate:
		return SymbolLate
	default:
		return SymbolOnTime
	}
}

// Label returns a human readable label ("On Time", "Early", "Late")
func (s EndedStatus) Label() string {
	switch s {
	case StatusEarly:
		return "Early"
	case StatusLate:
		return "Late"
	case StatusOnTime:
		return "On Time"
	default:
		return string(s)
	}
}

// SessionRun is the record of one executed attempt at a plan
type SessionRun struct {
	ActualDurationSeconds  int         `json:"actualDurationSeconds"`
	CommentText            string      `json:"commentText"`
	CreatedAt              time.Time   `json:"createdAt"`
	EndTime                *time.Time  `json:"endTime,omitempty"`
	EndedStatus            EndedStatus `json:"endedStatus"`
	ID                     string      `json:"id"`
	OvertimeSeconds        int         `json:"overtimeSeconds"`
	PlannedDurationMinutes int         `json:"plannedDurationMinutes"`
	SelfRating10           int         `json:"selfRating10"`
	SessionPlanID          string      `json:"sessionPlanId"`
	Stars5                 int         `json:"stars5"`
	StartTime              time.Time   `json:"startTime"`
}

// RunReview holds the post-session self assessment
type RunReview struct {
	Comment string
	Rating  int
	Stars   int
}

// Validate checks the review ranges. Errors wrap ErrInvalidReview.
func (r RunReview) Validate() error {
	if r.Rating < 0 || r.Rating > MaxSelfRating {
		return fmt.Errorf("%w: rating must be between 0 and %d, got %d", ErrInvalidReview, MaxSelfRating, r.Rating)
	}
	if r.Stars < 0 || r.Stars > MaxStars {
		return fmt.Errorf("%w: stars must be between 0 and %d, got %d", ErrInvalidReview, MaxStars, r.Stars)
	}
	return nil
}

// WithReview returns a copy of the run carrying the review fields
func (r SessionRun) WithReview(review RunReview) SessionRun {
	r.SelfRating10 = review.Rating
	r.Stars5 = review.Stars
	r.CommentText = review.Comment
	return r
}
