package services

import (
	"context"
	"fmt"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
)

// PlanCatalog stores session plans, most recent first
type PlanCatalog struct {
	state *AppState
}

// NewPlanCatalog creates a new PlanCatalog
func NewPlanCatalog(state *AppState) *PlanCatalog {
	return &PlanCatalog{state: state}
}

// Add validates the plan and prepends it
func (c *PlanCatalog) Add(ctx context.Context, plan domain.SessionPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	if _, exists := c.state.PlanByID(plan.ID); exists {
		return fmt.Errorf("%w: plan %s already exists", domain.ErrInvalidPlan, plan.ID)
	}

	plans := append([]domain.SessionPlan{plan}, c.state.Plans()...)
	if err := c.state.SetPlans(ctx, plans); err != nil {
		return fmt.Errorf("failed to add plan: %w", err)
	}

	logging.Logger.Info("Plan added",
		"plan_id", plan.ID,
		"workout_type", plan.WorkoutType,
		"exercises", len(plan.Exercises))
	return nil
}

// List returns all plans, most recent first
func (c *PlanCatalog) List() []domain.SessionPlan {
	return c.state.Plans()
}

// Get returns the plan with the given id
func (c *PlanCatalog) Get(id string) (*domain.SessionPlan, error) {
	plan, ok := c.state.PlanByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
	}
	return &plan, nil
}
