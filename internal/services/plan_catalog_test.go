package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

func TestPlanCatalog_AddPrepends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.catalog.Add(ctx, samplePlan("plan-1", 60)))
	require.NoError(t, env.catalog.Add(ctx, samplePlan("plan-2", 45)))

	plans := env.catalog.List()
	require.Len(t, plans, 2)
	assert.Equal(t, "plan-2", plans[0].ID)
	assert.Equal(t, "plan-1", plans[1].ID)
	assert.Contains(t, env.store.data, KeyPlans)
}

func TestPlanCatalog_AddRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.catalog.Add(ctx, samplePlan("plan-1", 60)))

	err := env.catalog.Add(ctx, samplePlan("plan-1", 30))
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)

	err = env.catalog.Add(ctx, samplePlan("plan-2", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)

	assert.Len(t, env.catalog.List(), 1)
}

func TestPlanCatalog_AddStoreFailureKeepsMemory(t *testing.T) {
	env := newTestEnv(t)
	env.store.failPut[KeyPlans] = true

	err := env.catalog.Add(context.Background(), samplePlan("plan-1", 60))

	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, env.catalog.List())
}

func TestPlanCatalog_Get(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.catalog.Add(context.Background(), samplePlan("plan-1", 60)))

	plan, err := env.catalog.Get("plan-1")
	require.NoError(t, err)
	assert.Equal(t, 60, plan.PlannedDurationMinutes)

	_, err = env.catalog.Get("plan-9")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}
