package domain

import (
	"fmt"
	"strings"
	"time"
)

// WorkoutType is the muscle group focus of a plan or exercise
type WorkoutType string

const (
	WorkoutAerobics  WorkoutType = "Aerobics"
	WorkoutFullBody  WorkoutType = "Full Body"
	WorkoutLowerBody WorkoutType = "Lower Body"
	WorkoutUpperBody WorkoutType = "Upper Body"
)

// WorkoutTypes lists the supported workout types in display order
var WorkoutTypes = []WorkoutType{
	WorkoutUpperBody,
	WorkoutLowerBody,
	WorkoutFullBody,
	WorkoutAerobics,
}

// IsValid reports whether w is one of the known workout types
func (w WorkoutType) IsValid() bool {
	for _, known := range WorkoutTypes {
		if w == known {
			return true
		}
	}
	return false
}

// ParseWorkoutType accepts the display name or its short form ("upper", "full"...)
func ParseWorkoutType(s string) (WorkoutType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, known := range WorkoutTypes {
		full := strings.ToLower(string(known))
		short := strings.Fields(full)[0]
		if normalized == full || normalized == short {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown workout type %q", s)
}

// CardioPlacement says where cardio happens relative to the strength block
type CardioPlacement string

const (
	CardioEnd   CardioPlacement = "End"
	CardioNone  CardioPlacement = "None"
	CardioStart CardioPlacement = "Start"
)

// CardioPlacements lists the supported placements in display order
var CardioPlacements = []CardioPlacement{CardioStart, CardioEnd, CardioNone}

// IsValid reports whether c is one of the known placements
func (c CardioPlacement) IsValid() bool {
	return c == CardioStart || c == CardioEnd || c == CardioNone
}

// ParseCardioPlacement parses a placement case-insensitively
func ParseCardioPlacement(s string) (CardioPlacement, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, known := range CardioPlacements {
		if normalized == strings.ToLower(string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown cardio placement %q", s)
}

// Exercise is one entry of a plan
type Exercise struct {
	ID          string      `json:"id"`
	MuscleGroup WorkoutType `json:"muscleGroup"`
	Name        string      `json:"name"`
	Reps        string      `json:"reps"`
	Sets        int         `json:"sets"`
}

// SessionPlan is a reusable workout template
type SessionPlan struct {
	CardioMinutes          int             `json:"cardioMinutes"`
	CardioPlacement        CardioPlacement `json:"cardioPlacement"`
	CreatedAt              time.Time       `json:"createdAt"`
	ExerciseCount          int             `json:"exerciseCount"`
	Exercises              []Exercise      `json:"exercises"`
	GoalText               string          `json:"goalText"`
	ID                     string          `json:"id"`
	PlannedDurationMinutes int             `json:"plannedDurationMinutes"`
	WorkoutType            WorkoutType     `json:"workoutType"`
}

// PlannedSeconds returns the planned duration in seconds
func (p SessionPlan) PlannedSeconds() int {
	return p.PlannedDurationMinutes * 60
}

// TotalSets sums the sets of every exercise
func (p SessionPlan) TotalSets() int {
	total := 0
	for _, ex := range p.Exercises {
		total += ex.Sets
	}
	return total
}

// Validate checks the structural invariants of a plan.
// Errors wrap ErrInvalidPlan.
func (p SessionPlan) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidPlan)
	case !p.WorkoutType.IsValid():
		return fmt.Errorf("%w: unknown workout type %q", ErrInvalidPlan, p.WorkoutType)
	case !p.CardioPlacement.IsValid():
		return fmt.Errorf("%w: unknown cardio placement %q", ErrInvalidPlan, p.CardioPlacement)
	case p.PlannedDurationMinutes <= 0:
		return fmt.Errorf("%w: planned duration must be positive, got %d", ErrInvalidPlan, p.PlannedDurationMinutes)
	case p.CardioMinutes < 0:
		return fmt.Errorf("%w: cardio minutes must not be negative, got %d", ErrInvalidPlan, p.CardioMinutes)
	case p.ExerciseCount != len(p.Exercises):
		return fmt.Errorf("%w: exercise count %d does not match %d exercises", ErrInvalidPlan, p.ExerciseCount, len(p.Exercises))
	}

	for _, ex := range p.Exercises {
		if ex.Sets < 0 {
			return fmt.Errorf("%w: exercise %q has negative sets", ErrInvalidPlan, ex.Name)
		}
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Errorf("%w: exercise %s has no name", ErrInvalidPlan, ex.ID)
		}
	}
	return nil
}
