package ui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/generator"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
)

func recordedRun(t *testing.T, env *uiEnv) domain.SessionRun {
	t.Helper()
	require.NoError(t, env.catalog.Add(context.Background(), testPlan()))
	require.NoError(t, env.runner.Start(context.Background(), testPlan()))
	for i := 0; i < 3; i++ {
		env.runner.Tick()
	}
	run, err := env.runner.ConfirmStop(context.Background())
	require.NoError(t, err)
	return run
}

func TestReviewForm_SubmitStoresReviewAndPublishes(t *testing.T) {
	env := newUIEnv(t)
	run := recordedRun(t, env)
	rf := NewReviewForm(env.history, env.feed, run)
	rf.rating = 8
	rf.stars = 4
	rf.comment = "good pump"
	rf.publish = true

	require.NoError(t, rf.submit(context.Background()))

	result := rf.Result()
	assert.Equal(t, 8, result.Run.SelfRating10)
	assert.Equal(t, 4, result.Run.Stars5)
	require.NotNil(t, result.Post)
	assert.Equal(t, domain.DefaultCaption, result.Post.Caption)
	assert.Equal(t, domain.WorkoutUpperBody, result.Post.WorkoutType)

	stored, err := env.history.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "good pump", stored.CommentText)
	assert.Len(t, env.feed.List(), 1)
}

func TestReviewForm_SubmitWithoutPublishing(t *testing.T) {
	env := newUIEnv(t)
	run := recordedRun(t, env)
	rf := NewReviewForm(env.history, env.feed, run)
	rf.rating = 3

	require.NoError(t, rf.submit(context.Background()))

	assert.Nil(t, rf.Result().Post)
	assert.Empty(t, env.feed.List())
}

func TestReviewForm_EscapeSkipsReview(t *testing.T) {
	env := newUIEnv(t)
	run := recordedRun(t, env)
	rf := NewReviewForm(env.history, env.feed, run)

	rf.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, rf.IsCompleted())
	assert.True(t, rf.Result().Cancelled)
	assert.Len(t, env.history.List(""), 1, "the run stays recorded")
}

func TestReviewForm_StartsAtEightAndFourStars(t *testing.T) {
	env := newUIEnv(t)
	run := recordedRun(t, env)
	rf := NewReviewForm(env.history, env.feed, run)

	require.NoError(t, rf.submit(context.Background()))

	assert.Equal(t, 8, rf.Result().Run.SelfRating10)
	assert.Equal(t, 4, rf.Result().Run.Stars5)
}

func TestStarLabel(t *testing.T) {
	assert.Equal(t, "no stars", starLabel(0))
	assert.Equal(t, "★★★ (3)", starLabel(3))
}

func newTestPlanForm(env *uiEnv) *PlanForm {
	builder := services.NewPlanBuilder(generator.Disabled{}, env.clock, 45, 10)
	return NewPlanForm(builder, env.catalog)
}

func TestPlanForm_GenerationFailureFallsBackToManual(t *testing.T) {
	env := newUIEnv(t)
	pf := newTestPlanForm(env)
	pf.step = stepGenerating

	pf.Update(generatedMsg{err: fmt.Errorf("%w: down", domain.ErrCollaboratorUnavailable)})

	assert.Equal(t, stepExercises, pf.step)
	assert.False(t, pf.IsCompleted())
	assert.Contains(t, pf.View(), "add exercises manually")
}

func TestPlanForm_FinishSavesPlan(t *testing.T) {
	env := newUIEnv(t)
	pf := newTestPlanForm(env)
	_, err := pf.builder.AddExercise("Squat", 5, "5")
	require.NoError(t, err)

	pf.finish()

	require.True(t, pf.IsCompleted())
	result := pf.Result()
	require.NoError(t, result.Error)
	require.NotNil(t, result.Plan)
	assert.Equal(t, 45, result.Plan.PlannedDurationMinutes)
	assert.Len(t, env.catalog.List(), 1)
}

func TestPlanForm_FinishWithoutExercises(t *testing.T) {
	env := newUIEnv(t)
	pf := newTestPlanForm(env)

	pf.finish()

	assert.ErrorIs(t, pf.Result().Error, domain.ErrEmptyPlan)
	assert.Empty(t, env.catalog.List())
}

func TestPlanForm_EscapeCancels(t *testing.T) {
	env := newUIEnv(t)
	s := &Standalone{Form: newTestPlanForm(env)}

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, isQuit(cmd))
	assert.True(t, s.Form.(*PlanForm).Result().Cancelled)
}

func TestIntValidators(t *testing.T) {
	assert.NoError(t, positiveInt("45"))
	assert.NoError(t, positiveInt(" 3 "))
	assert.Error(t, positiveInt("0"))
	assert.Error(t, positiveInt("abc"))
	assert.NoError(t, nonNegativeInt("0"))
	assert.Error(t, nonNegativeInt("-1"))
}
