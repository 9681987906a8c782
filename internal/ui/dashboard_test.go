package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

func newTestDashboard(env *uiEnv) *DashboardModel {
	return NewDashboardModel(DashboardConfig{
		Clock:    env.clock,
		Feed:     env.feed,
		History:  env.history,
		Progress: env.progress,
		State:    env.state,
	})
}

func TestDashboard_EmptyState(t *testing.T) {
	env := newUIEnv(t)

	view := newTestDashboard(env).View()

	assert.Contains(t, view, "Champion User")
	assert.Contains(t, view, "No runs yet.")
	assert.Contains(t, view, "Nothing shared yet.")
}

func TestDashboard_RefreshPicksUpNewRuns(t *testing.T) {
	env := newUIEnv(t)
	m := newTestDashboard(env)
	run := recordedRun(t, env)
	_, err := env.feed.Publish(context.Background(), run, "leg day done")
	require.NoError(t, err)

	m.Update(runeKey("r"))
	view := m.View()

	assert.Len(t, m.runs.Rows(), 1)
	assert.Contains(t, view, "leg day done")
	assert.Contains(t, view, "First Session")
	assert.NotContains(t, view, "No runs yet.")
}

func TestDashboard_QuitKey(t *testing.T) {
	env := newUIEnv(t)

	_, cmd := newTestDashboard(env).Update(runeKey("q"))

	assert.True(t, isQuit(cmd))
}

func TestStatusBadge(t *testing.T) {
	assert.Contains(t, StatusBadge(domain.StatusOnTime), "On Time")
	assert.Contains(t, StatusBadge(domain.StatusEarly), domain.SymbolEarly)
	assert.Contains(t, StatusBadge(domain.StatusLate), "Late")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{250, 10},
		{-5, 0},
	}

	for _, tt := range tests {
		bar := ProgressBar(tt.percent, 10)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "percent=%d", tt.percent)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "percent=%d", tt.percent)
	}
	assert.Empty(t, ProgressBar(50, 0))
}

func TestRenderPosts_Limit(t *testing.T) {
	posts := make([]domain.CommunityPost, 7)
	for i := range posts {
		posts[i] = domain.CommunityPost{Caption: "post", CreatedAt: time.Now(), UserName: "u"}
	}

	out := renderPosts(posts, 5)

	assert.Equal(t, 5, strings.Count(out, "  post\n"))
}
