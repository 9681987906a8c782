package cmd

import (
	"context"
	"fmt"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// RunsCmd lists and reviews completed runs
type RunsCmd struct {
	List   RunsListCmd   `cmd:"list" help:"List completed runs, newest first" default:"1"`
	Review RunsReviewCmd `cmd:"review" help:"Rate a completed run"`
	Show   RunsShowCmd   `cmd:"show" help:"Show a specific run"`
}

// parseTypeFilter turns an optional --type value into a workout type ("" means all)
func parseTypeFilter(value string) (domain.WorkoutType, error) {
	if value == "" {
		return "", nil
	}
	return domain.ParseWorkoutType(value)
}

// RunsListCmd lists runs
type RunsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to show (0 = all)" default:"0"`
	Type   string `help:"Only runs of this workout type" short:"t"`
}

// Run executes the list command
func (r *RunsListCmd) Run(cli *CLI) error {
	workoutType, err := parseTypeFilter(r.Type)
	if err != nil {
		return err
	}

	runs := cli.Container.History.List(workoutType)
	if r.Limit > 0 && len(runs) > r.Limit {
		runs = runs[:r.Limit]
	}
	if r.Format == "json" {
		return printJSON(cli.out(), runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cli.out(), "No runs yet")
		return nil
	}

	w := newTable(cli.out())
	fmt.Fprintln(w, "ID\tDATE\tDURATION\tPLANNED\tSTATUS\tOVERTIME\tRATING")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dm\t%s %s\t%s\t%s\n",
			run.ID, run.CreatedAt.Local().Format(timeLayout),
			domain.FormatClock(run.ActualDurationSeconds), run.PlannedDurationMinutes,
			run.EndedStatus.Symbol(), run.EndedStatus.Label(),
			domain.FormatClock(run.OvertimeSeconds), ratingText(run))
	}
	return w.Flush()
}

// RunsShowCmd views a specific run
type RunsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Run ID"`
}

// Run executes the show command
func (r *RunsShowCmd) Run(cli *CLI) error {
	run, err := cli.Container.History.Get(r.ID)
	if err != nil {
		return err
	}
	if r.Format == "json" {
		return printJSON(cli.out(), run)
	}

	out := cli.out()
	fmt.Fprintf(out, "Run: %s\n", run.ID)
	fmt.Fprintf(out, "Plan: %s\n", run.SessionPlanID)
	fmt.Fprintf(out, "Started: %s\n", run.StartTime.Local().Format(timeLayout))
	if run.EndTime != nil {
		fmt.Fprintf(out, "Ended: %s\n", run.EndTime.Local().Format(timeLayout))
	}
	fmt.Fprintf(out, "Duration: %s (planned %dm)\n", domain.FormatClock(run.ActualDurationSeconds), run.PlannedDurationMinutes)
	fmt.Fprintf(out, "Status: %s %s\n", run.EndedStatus.Symbol(), run.EndedStatus.Label())
	fmt.Fprintf(out, "Overtime: %s\n", domain.FormatClock(run.OvertimeSeconds))
	fmt.Fprintf(out, "Rating: %s\n", ratingText(*run))
	if run.CommentText != "" {
		fmt.Fprintf(out, "Comment: %s\n", run.CommentText)
	}
	return nil
}

// RunsReviewCmd stores the self assessment of a run
type RunsReviewCmd struct {
	Comment string `help:"Free text comment"`
	ID      string `arg:"" help:"Run ID"`
	Rating  int    `help:"Self rating from 0 to 10" required:""`
	Stars   int    `help:"Stars from 0 to 5" required:""`
}

// Run executes the review command
func (r *RunsReviewCmd) Run(cli *CLI) error {
	run, err := cli.Container.History.Review(context.Background(), r.ID, domain.RunReview{
		Comment: r.Comment,
		Rating:  r.Rating,
		Stars:   r.Stars,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out(), "Run %s reviewed: %s\n", run.ID, ratingText(*run))
	return nil
}
