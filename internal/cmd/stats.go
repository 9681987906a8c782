package cmd

import (
	"fmt"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ui"
)

// StatsCmd shows training statistics
type StatsCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Type   string `help:"Only runs of this workout type (weekly count always covers all)" short:"t"`
}

// statsOutput is the JSON shape of 'stats'
type statsOutput struct {
	AverageSessionMinutes int            `json:"averageSessionMinutes"`
	DisciplineScore       int            `json:"disciplineScore"`
	StatusCounts          map[string]int `json:"statusCounts"`
	StreakCount           int            `json:"streakCount"`
	TotalCardioMinutes    int            `json:"totalCardioMinutes"`
	WeeklyCompleted       int            `json:"weeklyCompleted"`
	WeeklyPercent         int            `json:"weeklyPercent"`
	WeeklyTarget          int            `json:"weeklyTarget"`
	WorkoutCount          int            `json:"workoutCount"`
}

// Run executes the stats command
func (s *StatsCmd) Run(cli *CLI) error {
	workoutType, err := parseTypeFilter(s.Type)
	if err != nil {
		return err
	}

	summary := cli.Container.Progress.Summary(cli.Container.Clock.Now(), workoutType)
	if s.Format == "json" {
		counts := make(map[string]int, len(summary.StatusCounts))
		for status, n := range summary.StatusCounts {
			counts[string(status)] = n
		}
		return printJSON(cli.out(), statsOutput{
			AverageSessionMinutes: summary.AverageSessionMinutes,
			DisciplineScore:       summary.DisciplineScore,
			StatusCounts:          counts,
			StreakCount:           summary.StreakCount,
			TotalCardioMinutes:    summary.TotalCardioMinutes,
			WeeklyCompleted:       summary.WeeklyCompleted,
			WeeklyPercent:         summary.WeeklyPercent(),
			WeeklyTarget:          summary.WeeklyTarget,
			WorkoutCount:          summary.WorkoutCount,
		})
	}

	w := newTable(cli.out())
	if workoutType != "" {
		fmt.Fprintf(w, "Workout type:\t%s\n", workoutType)
	}
	fmt.Fprintf(w, "Workouts:\t%d\n", summary.WorkoutCount)
	fmt.Fprintf(w, "Average session:\t%dm\n", summary.AverageSessionMinutes)
	fmt.Fprintf(w, "Total cardio:\t%dm\n", summary.TotalCardioMinutes)
	fmt.Fprintf(w, "On time / early / late:\t%d / %d / %d\n",
		summary.StatusCounts[domain.StatusOnTime], summary.StatusCounts[domain.StatusEarly], summary.StatusCounts[domain.StatusLate])
	fmt.Fprintf(w, "Discipline score:\t%d\n", summary.DisciplineScore)
	fmt.Fprintf(w, "Streak:\t%d\n", summary.StreakCount)
	fmt.Fprintf(w, "This week:\t%d/%d %s\n", summary.WeeklyCompleted, summary.WeeklyTarget, ui.ProgressBar(summary.WeeklyPercent(), 20))
	return w.Flush()
}
