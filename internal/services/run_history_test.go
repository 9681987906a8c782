package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

func sampleRun(id, planID string, status domain.EndedStatus, createdAt time.Time) domain.SessionRun {
	end := createdAt
	return domain.SessionRun{
		ActualDurationSeconds:  3600,
		CreatedAt:              createdAt,
		EndTime:                &end,
		EndedStatus:            status,
		ID:                     id,
		PlannedDurationMinutes: 60,
		SessionPlanID:          planID,
		StartTime:              createdAt.Add(-time.Hour),
	}
}

func TestRunHistory_RecordPrependsAndScores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := env.clock.Now()

	_, err := env.history.Record(ctx, sampleRun("run-1", "plan-1", domain.StatusEarly, now))
	require.NoError(t, err)
	profile, err := env.history.Record(ctx, sampleRun("run-2", "plan-1", domain.StatusOnTime, now.Add(time.Hour)))
	require.NoError(t, err)

	runs := env.history.List("")
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)

	require.NotNil(t, profile)
	assert.Equal(t, 70, profile.DisciplineScore)
	assert.Equal(t, 2, profile.StreakCount)
	assert.Len(t, profile.Achievements, 2)
	assert.Equal(t, *profile, env.state.User())
}

func TestRunHistory_RecordPersistsRunsBeforeUser(t *testing.T) {
	env := newTestEnv(t)
	env.store.failPut[KeyUser] = true

	_, err := env.history.Record(context.Background(), sampleRun("run-1", "plan-1", domain.StatusOnTime, env.clock.Now()))

	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, []string{KeyRuns}, env.store.puts)
	assert.Len(t, env.state.Runs(), 1)
	assert.Equal(t, 0, env.state.User().StreakCount)
}

func TestRunHistory_Review(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.history.Record(ctx, sampleRun("run-1", "plan-1", domain.StatusOnTime, env.clock.Now()))
	require.NoError(t, err)
	scoreBefore := env.state.User().DisciplineScore

	reviewed, err := env.history.Review(ctx, "run-1", domain.RunReview{Comment: "felt strong", Rating: 9, Stars: 5})

	require.NoError(t, err)
	assert.Equal(t, 9, reviewed.SelfRating10)
	assert.Equal(t, 5, reviewed.Stars5)
	assert.Equal(t, "felt strong", reviewed.CommentText)
	assert.Equal(t, scoreBefore, env.state.User().DisciplineScore)

	stored, err := env.history.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, "felt strong", stored.CommentText)

	// survives a reload from the store
	env.state.Reload(ctx)
	stored, err = env.history.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, 9, stored.SelfRating10)
}

func TestRunHistory_ReviewErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.history.Record(ctx, sampleRun("run-1", "plan-1", domain.StatusOnTime, env.clock.Now()))
	require.NoError(t, err)

	_, err = env.history.Review(ctx, "run-1", domain.RunReview{Rating: 11})
	assert.ErrorIs(t, err, domain.ErrInvalidReview)

	_, err = env.history.Review(ctx, "missing", domain.RunReview{Rating: 5})
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	stored, err := env.history.Get("run-1")
	require.NoError(t, err)
	assert.Zero(t, stored.SelfRating10)
}

func TestRunHistory_GetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.history.Get("nope")

	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRunHistory_ListFiltersByPlanWorkoutType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	upper := samplePlan("upper", 60)
	lower := samplePlan("lower", 45)
	lower.WorkoutType = domain.WorkoutLowerBody
	require.NoError(t, env.catalog.Add(ctx, upper))
	require.NoError(t, env.catalog.Add(ctx, lower))

	now := env.clock.Now()
	for _, run := range []domain.SessionRun{
		sampleRun("r1", "upper", domain.StatusOnTime, now),
		sampleRun("r2", "lower", domain.StatusLate, now),
		sampleRun("r3", "deleted-plan", domain.StatusEarly, now),
	} {
		_, err := env.history.Record(ctx, run)
		require.NoError(t, err)
	}

	assert.Len(t, env.history.List(""), 3)

	lowerRuns := env.history.List(domain.WorkoutLowerBody)
	require.Len(t, lowerRuns, 1)
	assert.Equal(t, "r2", lowerRuns[0].ID)

	assert.Empty(t, env.history.List(domain.WorkoutAerobics))
}
