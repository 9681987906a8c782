package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// Plan builder defaults
const (
	DefaultExerciseCount = 4
	DefaultGoal          = "Standard Training"
	DefaultReps          = "10"
	DefaultSets          = 3
)

// PlanDraft is a plan being assembled; forms bind directly to its fields
type PlanDraft struct {
	CardioMinutes          int
	CardioPlacement        domain.CardioPlacement
	ExerciseCount          int
	Exercises              []domain.Exercise
	GoalText               string
	PlannedDurationMinutes int
	WorkoutType            domain.WorkoutType
}

// PlanBuilder assembles a plan by hand or through the workout generator
type PlanBuilder struct {
	Draft     PlanDraft
	clock     ports.Clock
	generator ports.WorkoutGenerator
}

// NewPlanBuilder starts an empty draft with the given default durations
func NewPlanBuilder(generator ports.WorkoutGenerator, clock ports.Clock, plannedMinutes, cardioMinutes int) *PlanBuilder {
	return &PlanBuilder{
		Draft: PlanDraft{
			CardioMinutes:          cardioMinutes,
			CardioPlacement:        domain.CardioEnd,
			ExerciseCount:          DefaultExerciseCount,
			PlannedDurationMinutes: plannedMinutes,
			WorkoutType:            domain.WorkoutUpperBody,
		},
		clock:     clock,
		generator: generator,
	}
}

// AddExercise appends an exercise; zero sets and blank reps take the defaults
func (b *PlanBuilder) AddExercise(name string, sets int, reps string) (domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Exercise{}, fmt.Errorf("%w: exercise name is required", domain.ErrInvalidPlan)
	}
	if sets < 0 {
		return domain.Exercise{}, fmt.Errorf("%w: sets must not be negative", domain.ErrInvalidPlan)
	}
	if sets == 0 {
		sets = DefaultSets
	}
	reps = strings.TrimSpace(reps)
	if reps == "" {
		reps = DefaultReps
	}

	ex := domain.Exercise{
		ID:          uuid.New().String(),
		MuscleGroup: b.Draft.WorkoutType,
		Name:        name,
		Reps:        reps,
		Sets:        sets,
	}
	b.Draft.Exercises = append(b.Draft.Exercises, ex)
	return ex, nil
}

// RemoveExercise drops the exercise with the given id
func (b *PlanBuilder) RemoveExercise(id string) bool {
	for i, ex := range b.Draft.Exercises {
		if ex.ID == id {
			b.Draft.Exercises = append(b.Draft.Exercises[:i:i], b.Draft.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// Generate replaces the exercises and timings with the generator's proposal.
// On any failure the draft is left exactly as it was and the error wraps
// domain.ErrCollaboratorUnavailable; callers fall back to manual entry.
func (b *PlanBuilder) Generate(ctx context.Context) error {
	req := ports.GenerateRequest{
		ExerciseCount: max(1, b.Draft.ExerciseCount),
		Goal:          b.goal(),
		WorkoutType:   b.Draft.WorkoutType,
	}

	generated, err := b.generator.Generate(ctx, req)
	if err == nil {
		err = checkProposal(generated)
	}
	if err != nil {
		observability.RecordGeneratorFailure()
		logging.Logger.Warn("Workout generation failed, manual input required", "error", err)
		return err
	}

	exercises := make([]domain.Exercise, 0, len(generated.Exercises))
	for _, ex := range generated.Exercises {
		exercises = append(exercises, domain.Exercise{
			ID:          uuid.New().String(),
			MuscleGroup: b.Draft.WorkoutType,
			Name:        ex.Name,
			Reps:        ex.Reps,
			Sets:        ex.Sets,
		})
	}

	b.Draft.Exercises = exercises
	b.Draft.CardioPlacement = generated.CardioPlacement
	b.Draft.CardioMinutes = generated.CardioMinutes
	if generated.PlannedDurationMinutes > 0 {
		b.Draft.PlannedDurationMinutes = generated.PlannedDurationMinutes
	}

	logging.Logger.Info("Workout generated", "exercises", len(exercises), "workout_type", b.Draft.WorkoutType)
	return nil
}

// checkProposal rejects a proposal the draft cannot take as is
func checkProposal(generated *ports.GeneratedPlan) error {
	switch {
	case generated == nil || len(generated.Exercises) == 0:
		return fmt.Errorf("%w: empty proposal", domain.ErrCollaboratorUnavailable)
	case !generated.CardioPlacement.IsValid():
		return fmt.Errorf("%w: unknown cardio placement %q", domain.ErrCollaboratorUnavailable, generated.CardioPlacement)
	case generated.CardioMinutes < 0:
		return fmt.Errorf("%w: negative cardio minutes %d", domain.ErrCollaboratorUnavailable, generated.CardioMinutes)
	}
	for _, ex := range generated.Exercises {
		if strings.TrimSpace(ex.Name) == "" || ex.Sets < 0 {
			return fmt.Errorf("%w: invalid exercise %q", domain.ErrCollaboratorUnavailable, ex.Name)
		}
	}
	return nil
}

// Build turns the draft into a validated plan
func (b *PlanBuilder) Build() (domain.SessionPlan, error) {
	if len(b.Draft.Exercises) == 0 {
		return domain.SessionPlan{}, domain.ErrEmptyPlan
	}

	cardioMinutes := b.Draft.CardioMinutes
	if b.Draft.CardioPlacement == domain.CardioNone {
		cardioMinutes = 0
	}

	plan := domain.SessionPlan{
		CardioMinutes:          cardioMinutes,
		CardioPlacement:        b.Draft.CardioPlacement,
		CreatedAt:              b.clock.Now(),
		ExerciseCount:          len(b.Draft.Exercises),
		Exercises:              append([]domain.Exercise(nil), b.Draft.Exercises...),
		GoalText:               b.goal(),
		ID:                     uuid.New().String(),
		PlannedDurationMinutes: b.Draft.PlannedDurationMinutes,
		WorkoutType:            b.Draft.WorkoutType,
	}
	if err := plan.Validate(); err != nil {
		return domain.SessionPlan{}, err
	}
	return plan, nil
}

func (b *PlanBuilder) goal() string {
	if goal := strings.TrimSpace(b.Draft.GoalText); goal != "" {
		return goal
	}
	return DefaultGoal
}
