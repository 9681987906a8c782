package ports

import (
	"context"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// GenerateRequest asks the generator for a plan outline
type GenerateRequest struct {
	ExerciseCount int                `json:"exerciseCount"`
	Goal          string             `json:"goal"`
	WorkoutType   domain.WorkoutType `json:"workoutType"`
}

// GeneratedExercise is one exercise proposed by the generator
type GeneratedExercise struct {
	Name string `json:"name"`
	Reps string `json:"reps"`
	Sets int    `json:"sets"`
}

// GeneratedPlan is the generator's proposal for a plan
type GeneratedPlan struct {
	CardioMinutes          int                    `json:"cardioMinutes"`
	CardioPlacement        domain.CardioPlacement `json:"cardioPlacement"`
	Exercises              []GeneratedExercise    `json:"exercises"`
	PlannedDurationMinutes int                    `json:"plannedDurationMinutes"`
}

// WorkoutGenerator produces plan outlines from a goal.
// Any failure is reported wrapping domain.ErrCollaboratorUnavailable.
type WorkoutGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedPlan, error)
}
