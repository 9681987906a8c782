package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

func TestAppState_LoadsDefaults(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, domain.DefaultProfile(), env.state.User())
	assert.Empty(t, env.state.Plans())
	assert.Empty(t, env.state.Runs())
	assert.Empty(t, env.state.Posts())
	assert.Nil(t, env.state.Active())
}

func TestAppState_AccessorsReturnCopies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.state.SetPlans(ctx, []domain.SessionPlan{samplePlan("plan-1", 60)}))
	require.NoError(t, env.state.SetActive(ctx, domain.ActiveSession{Plan: samplePlan("plan-1", 60), StartTime: env.clock.Now()}))

	plans := env.state.Plans()
	plans[0].ID = "mutated"
	active := env.state.Active()
	active.Plan.GoalText = "mutated"
	user := env.state.User()
	user.Achievements = append(user.Achievements, domain.OnTimeAchievement(env.clock.Now()))

	assert.Equal(t, "plan-1", env.state.Plans()[0].ID)
	assert.Equal(t, "Strength", env.state.Active().Plan.GoalText)
	assert.Empty(t, env.state.User().Achievements)
}

func TestAppState_SetActiveFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	env.store.failPut[KeyActiveStartTime] = true

	err := env.state.SetActive(context.Background(), domain.ActiveSession{Plan: samplePlan("plan-1", 60), StartTime: env.clock.Now()})

	assert.ErrorIs(t, err, errDiskFull)
	assert.Nil(t, env.state.Active())
	assert.NotContains(t, env.store.data, KeyActivePlan)
}

func TestAppState_ClearActiveForgetsEvenWhenDeleteFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.state.SetActive(ctx, domain.ActiveSession{Plan: samplePlan("plan-1", 60), StartTime: env.clock.Now()}))
	env.store.failDelete[KeyActivePlan] = true

	err := env.state.ClearActive(ctx)

	assert.ErrorIs(t, err, errDiskFull)
	assert.Nil(t, env.state.Active())
	// start time went, so the next load sees a half pair and drops it
	env.store.failDelete[KeyActivePlan] = false
	env.state.Reload(ctx)
	assert.Nil(t, env.state.Active())
	assert.NotContains(t, env.store.data, KeyActivePlan)
}

func TestAppState_ReloadRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)
	require.NoError(t, env.state.SetActive(ctx, domain.ActiveSession{Plan: samplePlan("plan-1", 60), StartTime: start}))

	reloaded := LoadAppState(ctx, env.gateway)

	require.NotNil(t, reloaded.Active())
	assert.True(t, start.Equal(reloaded.Active().StartTime))
	assert.Equal(t, "plan-1", reloaded.Active().Plan.ID)

	plan, ok := reloaded.PlanByID("plan-1")
	assert.False(t, ok, "the active plan is not part of the catalog")
	assert.Empty(t, plan.ID)
}
