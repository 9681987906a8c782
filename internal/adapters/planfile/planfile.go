// Package planfile reads and writes session plans as YAML documents
package planfile

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// Document is the top-level YAML layout
type Document struct {
	Plans []PlanDTO `yaml:"plans"`
}

// PlanDTO is the YAML form of a session plan
type PlanDTO struct {
	Cardio         CardioDTO     `yaml:"cardio"`
	CreatedAt      *time.Time    `yaml:"created_at,omitempty"`
	Exercises      []ExerciseDTO `yaml:"exercises"`
	Goal           string        `yaml:"goal,omitempty"`
	ID             string        `yaml:"id,omitempty"`
	PlannedMinutes int           `yaml:"planned_minutes"`
	WorkoutType    string        `yaml:"workout_type"`
}

// CardioDTO groups cardio placement and length
type CardioDTO struct {
	Minutes   int    `yaml:"minutes"`
	Placement string `yaml:"placement"`
}

// ExerciseDTO is the YAML form of an exercise. Reps accepts numbers or text.
type ExerciseDTO struct {
	Name string    `yaml:"name"`
	Reps yaml.Node `yaml:"reps"`
	Sets int       `yaml:"sets"`
}

// Decode parses a plan document. Missing ids are generated, missing
// timestamps take now, and every plan is validated.
func Decode(r io.Reader, now time.Time) ([]domain.SessionPlan, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.SessionPlan{}, nil
		}
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	plans := make([]domain.SessionPlan, 0, len(doc.Plans))
	for i, dto := range doc.Plans {
		plan, err := toDomain(dto, now)
		if err != nil {
			return nil, fmt.Errorf("plan %d: %w", i+1, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Encode writes plans as a YAML document
func Encode(w io.Writer, plans []domain.SessionPlan) error {
	doc := Document{Plans: make([]PlanDTO, 0, len(plans))}
	for _, plan := range plans {
		doc.Plans = append(doc.Plans, fromDomain(plan))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return enc.Close()
}

func toDomain(dto PlanDTO, now time.Time) (domain.SessionPlan, error) {
	workoutType, err := domain.ParseWorkoutType(dto.WorkoutType)
	if err != nil {
		return domain.SessionPlan{}, fmt.Errorf("%w: %w", domain.ErrInvalidPlan, err)
	}

	placement := domain.CardioNone
	if strings.TrimSpace(dto.Cardio.Placement) != "" {
		placement, err = domain.ParseCardioPlacement(dto.Cardio.Placement)
		if err != nil {
			return domain.SessionPlan{}, fmt.Errorf("%w: %w", domain.ErrInvalidPlan, err)
		}
	}
	cardioMinutes := dto.Cardio.Minutes
	if placement == domain.CardioNone {
		cardioMinutes = 0
	}

	exercises := make([]domain.Exercise, 0, len(dto.Exercises))
	for _, ex := range dto.Exercises {
		reps, err := repsValue(ex.Reps)
		if err != nil {
			return domain.SessionPlan{}, fmt.Errorf("%w: exercise %q: %w", domain.ErrInvalidPlan, ex.Name, err)
		}
		exercises = append(exercises, domain.Exercise{
			ID:          uuid.New().String(),
			MuscleGroup: workoutType,
			Name:        strings.TrimSpace(ex.Name),
			Reps:        reps,
			Sets:        ex.Sets,
		})
	}
	if len(exercises) == 0 {
		return domain.SessionPlan{}, domain.ErrEmptyPlan
	}

	id := strings.TrimSpace(dto.ID)
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := now
	if dto.CreatedAt != nil {
		createdAt = *dto.CreatedAt
	}

	plan := domain.SessionPlan{
		CardioMinutes:          cardioMinutes,
		CardioPlacement:        placement,
		CreatedAt:              createdAt,
		ExerciseCount:          len(exercises),
		Exercises:              exercises,
		GoalText:               strings.TrimSpace(dto.Goal),
		ID:                     id,
		PlannedDurationMinutes: dto.PlannedMinutes,
		WorkoutType:            workoutType,
	}
	if err := plan.Validate(); err != nil {
		return domain.SessionPlan{}, err
	}
	return plan, nil
}

// repsValue accepts a scalar of any kind; "8", 8 and "max" are all valid
func repsValue(node yaml.Node) (string, error) {
	switch node.Kind {
	case 0:
		return "", errors.New("reps is required")
	case yaml.ScalarNode:
		value := strings.TrimSpace(node.Value)
		if value == "" {
			return "", errors.New("reps is required")
		}
		return value, nil
	default:
		return "", errors.New("reps must be a number or text")
	}
}

func fromDomain(plan domain.SessionPlan) PlanDTO {
	createdAt := plan.CreatedAt
	dto := PlanDTO{
		Cardio: CardioDTO{
			Minutes:   plan.CardioMinutes,
			Placement: string(plan.CardioPlacement),
		},
		CreatedAt:      &createdAt,
		Exercises:      make([]ExerciseDTO, 0, len(plan.Exercises)),
		Goal:           plan.GoalText,
		ID:             plan.ID,
		PlannedMinutes: plan.PlannedDurationMinutes,
		WorkoutType:    string(plan.WorkoutType),
	}
	for _, ex := range plan.Exercises {
		reps := yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ex.Reps}
		if _, err := strconv.Atoi(ex.Reps); err == nil {
			reps.Tag = "!!int"
		}
		dto.Exercises = append(dto.Exercises, ExerciseDTO{Name: ex.Name, Reps: reps, Sets: ex.Sets})
	}
	return dto
}
