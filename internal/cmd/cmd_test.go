package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterclock "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/clock"
	adaptergenerator "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/generator"
	adapterstorage "github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/storage"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/config"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestCLI wires a CLI over a file store in a temp dir
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer, *testClock) {
	t.Helper()
	dir := t.TempDir()
	store, err := adapterstorage.NewFileStore(dir)
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)}
	opts := ContainerOptions{
		Backend:        config.StorageFile,
		CardioMinutes:  config.DefaultCardioMinutes,
		DataDir:        dir,
		PlannedMinutes: config.DefaultPlannedMinutes,
	}
	container := wireContainer(opts, store, clock, adapterclock.TickerFactory{}, adaptergenerator.Disabled{})
	t.Cleanup(func() { container.Close() })

	out := &bytes.Buffer{}
	return &CLI{Container: container, Out: out}, out, clock
}

func intPtr(n int) *int { return &n }

func addPlan(t *testing.T, cli *CLI) domain.SessionPlan {
	t.Helper()
	cmd := &PlansAddCmd{
		Count:     4,
		Exercise:  []string{"Bench Press:4x8", "Pull Up:3xmax", "Plank"},
		Goal:      "Strength",
		Minutes:   intPtr(60),
		Placement: "end",
		Type:      "upper",
	}
	require.NoError(t, cmd.Run(cli))
	plans := cli.Container.Catalog.List()
	require.NotEmpty(t, plans)
	return plans[0]
}

func TestParseExerciseFlag(t *testing.T) {
	tests := []struct {
		value   string
		name    string
		sets    int
		reps    string
		wantErr bool
	}{
		{value: "Bench Press:4x8", name: "Bench Press", sets: 4, reps: "8"},
		{value: "Plank:3x45s", name: "Plank", sets: 3, reps: "45s"},
		{value: "Squat", name: "Squat"},
		{value: " Row :x12", name: "Row", reps: "12"},
		{value: ":3x8", wantErr: true},
		{value: "Dip:threex8", wantErr: true},
		{value: "Dip:-1x8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			name, sets, reps, err := parseExerciseFlag(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPlan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.sets, sets)
			assert.Equal(t, tt.reps, reps)
		})
	}
}

func TestPlansAdd_FromFlags(t *testing.T) {
	cli, out, _ := newTestCLI(t)

	plan := addPlan(t, cli)

	assert.Equal(t, domain.WorkoutUpperBody, plan.WorkoutType)
	assert.Equal(t, "Strength", plan.GoalText)
	assert.Equal(t, 60, plan.PlannedDurationMinutes)
	assert.Equal(t, config.DefaultCardioMinutes, plan.CardioMinutes)
	require.Len(t, plan.Exercises, 3)
	assert.Equal(t, "max", plan.Exercises[1].Reps)
	assert.Equal(t, 3, plan.Exercises[2].Sets)
	assert.Equal(t, "10", plan.Exercises[2].Reps)
	assert.Contains(t, out.String(), plan.ID)
}

func TestPlansAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     PlansAddCmd
		wantErr error
	}{
		{"no exercises", PlansAddCmd{Placement: "end", Type: "full"}, domain.ErrEmptyPlan},
		{"generator unavailable without fallback", PlansAddCmd{Generate: true, Placement: "end", Type: "full"}, domain.ErrCollaboratorUnavailable},
		{"zero minutes", PlansAddCmd{Exercise: []string{"Squat"}, Minutes: intPtr(0), Placement: "end", Type: "lower"}, domain.ErrInvalidPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _ := newTestCLI(t)
			err := tt.cmd.Run(cli)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, cli.Container.Catalog.List())
		})
	}
}

func TestPlansAdd_GeneratorFallsBackToGivenExercises(t *testing.T) {
	cli, out, _ := newTestCLI(t)

	cmd := &PlansAddCmd{Exercise: []string{"Burpee:5x20"}, Generate: true, Placement: "none", Type: "aerobics"}
	require.NoError(t, cmd.Run(cli))

	plans := cli.Container.Catalog.List()
	require.Len(t, plans, 1)
	assert.Equal(t, "Burpee", plans[0].Exercises[0].Name)
	assert.Zero(t, plans[0].CardioMinutes)
	assert.Contains(t, out.String(), "Generator unavailable")
}

func TestPlansShow_JSON(t *testing.T) {
	cli, out, _ := newTestCLI(t)
	plan := addPlan(t, cli)
	out.Reset()

	require.NoError(t, (&PlansShowCmd{Format: "json", ID: plan.ID}).Run(cli))

	var shown domain.SessionPlan
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, plan.ID, shown.ID)

	err := (&PlansShowCmd{Format: "table", ID: "missing"}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlansExportImport(t *testing.T) {
	source, _, _ := newTestCLI(t)
	plan := addPlan(t, source)
	file := filepath.Join(t.TempDir(), "plans.yaml")

	require.NoError(t, (&PlansExportCmd{File: file}).Run(source))

	target, out, _ := newTestCLI(t)
	require.NoError(t, (&PlansImportCmd{File: file}).Run(target))

	imported, err := target.Container.Catalog.Get(plan.ID)
	require.NoError(t, err)
	require.Len(t, imported.Exercises, len(plan.Exercises))
	for i, ex := range plan.Exercises {
		assert.Equal(t, ex.Name, imported.Exercises[i].Name)
		assert.Equal(t, ex.Sets, imported.Exercises[i].Sets)
		assert.Equal(t, ex.Reps, imported.Exercises[i].Reps)
	}
	assert.Equal(t, plan.WorkoutType, imported.WorkoutType)
	assert.Equal(t, plan.CardioMinutes, imported.CardioMinutes)
	assert.Contains(t, out.String(), "Imported 1 of 1 plans")

	// A second import of the same ids is rejected plan by plan
	err = (&PlansImportCmd{File: file}).Run(target)
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
	assert.Len(t, target.Container.Catalog.List(), 1)
}

func TestPlansExport_FiltersByID(t *testing.T) {
	cli, out, _ := newTestCLI(t)
	first := addPlan(t, cli)
	addPlan(t, cli)
	out.Reset()

	require.NoError(t, (&PlansExportCmd{IDs: []string{first.ID}}).Run(cli))
	assert.Contains(t, out.String(), first.ID)
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("workout_type:")))
}

func TestSessionLifecycle_WithoutTUI(t *testing.T) {
	cli, out, clock := newTestCLI(t)
	plan := addPlan(t, cli)

	require.NoError(t, (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(cli))
	require.NotNil(t, cli.Container.State.Active())

	// A second start is refused while the first session is running
	err := (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	clock.now = clock.now.Add(61*time.Minute + 40*time.Second)
	out.Reset()
	require.NoError(t, (&SessionStatusCmd{Format: "json"}).Run(cli))
	var status sessionStatus
	require.NoError(t, json.Unmarshal(out.Bytes(), &status))
	assert.Equal(t, 3700, status.ElapsedSeconds)
	assert.Equal(t, 100, status.OvertimeSeconds)
	assert.Equal(t, domain.StatusOnTime, status.Projected)

	out.Reset()
	stop := &SessionStopCmd{Caption: "Done!", Comment: "good", Publish: true, Rating: 8, Stars: 4}
	require.NoError(t, stop.Run(cli))
	assert.Nil(t, cli.Container.State.Active())

	runs := cli.Container.History.List("")
	require.Len(t, runs, 1)
	assert.Equal(t, domain.StatusOnTime, runs[0].EndedStatus)
	assert.Equal(t, 8, runs[0].SelfRating10)
	assert.Equal(t, "good", runs[0].CommentText)

	posts := cli.Container.Feed.List()
	require.Len(t, posts, 1)
	assert.Equal(t, "Done!", posts[0].Caption)
	assert.Equal(t, "61m", posts[0].Duration)

	user := cli.Container.State.User()
	assert.Equal(t, 100, user.DisciplineScore)
	assert.Equal(t, 1, user.StreakCount)
	assert.Contains(t, out.String(), "Discipline score 100, streak 1")
}

func TestSessionStop_NoRunningSession(t *testing.T) {
	cli, _, _ := newTestCLI(t)

	err := (&SessionStopCmd{}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = (&ResumeCmd{}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSessionCancel(t *testing.T) {
	cli, out, _ := newTestCLI(t)
	plan := addPlan(t, cli)

	require.NoError(t, (&SessionCancelCmd{}).Run(cli))
	assert.Contains(t, out.String(), "No running session")

	require.NoError(t, (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(cli))
	out.Reset()
	require.NoError(t, (&SessionCancelCmd{}).Run(cli))

	assert.Contains(t, out.String(), "Session discarded")
	assert.Nil(t, cli.Container.State.Active())
	assert.Empty(t, cli.Container.History.List(""))
}

func TestRunsReviewAndFeed(t *testing.T) {
	cli, out, clock := newTestCLI(t)
	plan := addPlan(t, cli)
	require.NoError(t, (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(cli))
	clock.now = clock.now.Add(50 * time.Minute)
	require.NoError(t, (&SessionStopCmd{}).Run(cli))
	run := cli.Container.History.List("")[0]
	assert.Equal(t, domain.StatusEarly, run.EndedStatus)

	err := (&RunsReviewCmd{ID: run.ID, Rating: 11, Stars: 2}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrInvalidReview)

	require.NoError(t, (&RunsReviewCmd{ID: run.ID, Rating: 6, Stars: 3}).Run(cli))
	out.Reset()
	require.NoError(t, (&RunsShowCmd{Format: "table", ID: run.ID}).Run(cli))
	assert.Contains(t, out.String(), "6/10 ★★★")

	// Publishing without an id shares the latest run
	require.NoError(t, (&FeedPublishCmd{}).Run(cli))
	post := cli.Container.Feed.List()[0]
	assert.Equal(t, domain.DefaultCaption, post.Caption)
	assert.Equal(t, domain.WorkoutUpperBody, post.WorkoutType)

	require.NoError(t, (&FeedLikeCmd{PostID: post.ID}).Run(cli))
	require.NoError(t, (&FeedLikeCmd{PostID: "missing"}).Run(cli))
	assert.Equal(t, 1, cli.Container.Feed.List()[0].LikesCount)

	out.Reset()
	require.NoError(t, (&RunsListCmd{Format: "table", Type: "lower"}).Run(cli))
	assert.Contains(t, out.String(), "No runs yet")

	err = (&RunsListCmd{Format: "table", Type: "cardio"}).Run(cli)
	assert.Error(t, err)
}

func TestFeedPublish_NoRuns(t *testing.T) {
	cli, _, _ := newTestCLI(t)

	err := (&FeedPublishCmd{}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestStats_JSON(t *testing.T) {
	cli, out, clock := newTestCLI(t)
	plan := addPlan(t, cli)
	require.NoError(t, (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(cli))
	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, (&SessionStopCmd{}).Run(cli))
	out.Reset()

	require.NoError(t, (&StatsCmd{Format: "json"}).Run(cli))

	var stats statsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, 1, stats.WorkoutCount)
	assert.Equal(t, 60, stats.AverageSessionMinutes)
	assert.Equal(t, config.DefaultCardioMinutes, stats.TotalCardioMinutes)
	assert.Equal(t, 1, stats.StatusCounts[string(domain.StatusOnTime)])
	assert.Equal(t, 1, stats.WeeklyCompleted)
	assert.Equal(t, 25, stats.WeeklyPercent)
}

func TestContainerOptions_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		settings string
		expected string
	}{
		{"default", "", "", "", config.StorageFile},
		{"settings", "", "", config.StorageSQLite, config.StorageSQLite},
		{"env beats settings", "", config.StorageFile, config.StorageSQLite, config.StorageFile},
		{"flag beats env", config.StorageSQLite, config.StorageFile, config.StorageFile, config.StorageSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvStorage, tt.env)
			cli := &CLI{Storage: tt.flag}
			cli.SetSettings(&config.Settings{StorageBackend: tt.settings, DefaultPlannedMinutes: intPtr(45)})

			opts := cli.containerOptions()
			assert.Equal(t, tt.expected, opts.Backend)
			assert.Equal(t, 45, opts.PlannedMinutes)
			assert.Equal(t, config.DefaultCardioMinutes, opts.CardioMinutes)
		})
	}
}

func TestServeResolve(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := (&ServeCmd{}).resolve(nil)
	assert.Equal(t, config.DefaultSSHHost, cfg.Host)
	assert.Equal(t, config.DefaultSSHPort, cfg.Port)
	assert.Equal(t, config.DefaultMetricsAddr, cfg.MetricsAddr)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".ssh", "authorized_keys"), cfg.AuthorizedKeys)

	settings := &config.Settings{SSHHost: "0.0.0.0", SSHPort: intPtr(2222), MetricsAddr: ":9999"}
	cfg = (&ServeCmd{}).resolve(settings)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, ":9999", cfg.MetricsAddr)

	cfg = (&ServeCmd{Host: "127.0.0.1", Port: 3333, AuthorizedKeys: "/tmp/keys"}).resolve(settings)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 3333, cfg.Port)
	assert.Equal(t, "/tmp/keys", cfg.AuthorizedKeys)
}

func TestSettingsExample_ListsEveryKey(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	cli, out, _ := newTestCLI(t)

	require.NoError(t, (&SettingsExampleCmd{Format: "table"}).Run(cli))

	for key := range config.GetSettingsExample() {
		assert.Contains(t, out.String(), key)
	}
}

func TestNewStore_Backends(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{config.StorageFile, config.StorageSQLite} {
		store, err := NewStore(ContainerOptions{Backend: backend, DataDir: filepath.Join(dir, "data"), DBPath: filepath.Join(dir, "test.db")})
		require.NoError(t, err, backend)
		require.NoError(t, store.Close())
	}

	_, err := NewStore(ContainerOptions{Backend: "redis"})
	assert.Error(t, err)
}

func TestDashboardFactory_OpensSnapshot(t *testing.T) {
	cli, _, _ := newTestCLI(t)
	addPlan(t, cli)

	model, closer, err := cli.Container.DashboardFactory()()
	require.NoError(t, err)
	assert.NotNil(t, model)
	assert.NoError(t, closer.Close())
}

func TestHistorySnapshot_SeesRunsFromAnotherContainer(t *testing.T) {
	serving, _, clock := newTestCLI(t)
	collector := observability.NewStoreCollector(serving.Container.HistorySnapshot)
	before := `
# HELP metrogym_history_streak_count Stored streak of completed sessions.
# TYPE metrogym_history_streak_count gauge
metrogym_history_streak_count 0
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(before), "metrogym_history_streak_count"))

	store, err := adapterstorage.NewFileStore(serving.Container.opts.DataDir)
	require.NoError(t, err)
	writer := wireContainer(serving.Container.opts, store, clock, adapterclock.TickerFactory{}, adaptergenerator.Disabled{})
	t.Cleanup(func() { writer.Close() })
	plan := addPlan(t, &CLI{Container: writer, Out: &bytes.Buffer{}})
	require.NoError(t, (&StartCmd{NoTUI: true, PlanID: plan.ID}).Run(&CLI{Container: writer, Out: &bytes.Buffer{}}))
	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, (&SessionStopCmd{}).Run(&CLI{Container: writer, Out: &bytes.Buffer{}}))

	expected := `
# HELP metrogym_history_runs Stored runs by ended status.
# TYPE metrogym_history_runs gauge
metrogym_history_runs{status="EARLY"} 0
metrogym_history_runs{status="LATE"} 0
metrogym_history_runs{status="ON_TIME"} 1
# HELP metrogym_history_streak_count Stored streak of completed sessions.
# TYPE metrogym_history_streak_count gauge
metrogym_history_streak_count 1
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"metrogym_history_runs", "metrogym_history_streak_count"))
	// the serving container's own loaded state is untouched
	assert.Empty(t, serving.Container.History.List(""))
}
