package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ui"
)

// StartCmd starts a session from a plan
type StartCmd struct {
	NoTUI  bool   `name:"no-tui" help:"Start the session and return; finish it later with 'session stop'"`
	PlanID string `arg:"" help:"Plan ID"`
}

// Run executes the start command
func (s *StartCmd) Run(cli *CLI) error {
	plan, err := cli.Container.Catalog.Get(s.PlanID)
	if err != nil {
		return err
	}

	runner := cli.Container.NewRunner()
	if err := runner.Start(context.Background(), *plan); err != nil {
		runner.Close()
		if errors.Is(err, domain.ErrInvalidState) {
			return fmt.Errorf("%w (use 'metrogym resume' or 'metrogym session cancel')", err)
		}
		return err
	}

	if s.NoTUI {
		runner.Close()
		fmt.Fprintf(cli.out(), "Session started for plan %s at %s (planned %dm)\n",
			plan.ID, runner.Active().StartTime.Local().Format(timeLayout), plan.PlannedDurationMinutes)
		return nil
	}
	return runSessionScreen(cli, runner)
}

// ResumeCmd reopens the running session
type ResumeCmd struct{}

// Run executes the resume command
func (r *ResumeCmd) Run(cli *CLI) error {
	runner := cli.Container.NewRunner()
	if runner.Active() == nil {
		runner.Close()
		return fmt.Errorf("%w: no running session", domain.ErrInvalidState)
	}
	return runSessionScreen(cli, runner)
}

// runSessionScreen runs the session TUI and reports how it ended
func runSessionScreen(cli *CLI, runner *services.SessionRunner) error {
	defer runner.Close()

	model := ui.NewSessionModel(ui.SessionModelConfig{
		Feed:    cli.Container.Feed,
		History: cli.Container.History,
		Runner:  runner,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("session screen failed: %w", err)
	}

	out := cli.out()
	switch model.Outcome() {
	case ui.OutcomeCompleted:
		run := runner.LastRun()
		if run == nil {
			return nil
		}
		fmt.Fprintf(out, "Session complete: %s in %s (overtime %s)\n",
			run.EndedStatus.Label(), domain.FormatClock(run.ActualDurationSeconds), domain.FormatClock(run.OvertimeSeconds))
		if review := model.Review(); review != nil {
			result := review.Result()
			if result.Error != nil {
				return result.Error
			}
			if result.Post != nil {
				fmt.Fprintf(out, "Shared to the community feed as %s\n", result.Post.ID)
			}
		}
	case ui.OutcomeCancelled:
		if err := model.Err(); err != nil {
			return fmt.Errorf("session discarded but the stored session was not cleared: %w", err)
		}
		fmt.Fprintln(out, "Session discarded")
	default:
		if runner.Active() != nil {
			fmt.Fprintln(out, "Session still running. Reopen it with 'metrogym resume'.")
		}
	}
	return nil
}

// SessionCmd inspects or ends the running session without the TUI
type SessionCmd struct {
	Cancel SessionCancelCmd `cmd:"cancel" help:"Discard the running session without saving a run"`
	Status SessionStatusCmd `cmd:"status" help:"Show the running session" default:"1"`
	Stop   SessionStopCmd   `cmd:"stop" help:"Finish the running session and record the run"`
}

// sessionStatus is the JSON shape of 'session status'
type sessionStatus struct {
	ElapsedSeconds  int                `json:"elapsedSeconds"`
	OvertimeSeconds int                `json:"overtimeSeconds"`
	Plan            domain.SessionPlan `json:"plan"`
	Projected       domain.EndedStatus `json:"projectedStatus"`
	StartTime       string             `json:"startTime"`
}

// SessionStatusCmd shows the running session
type SessionStatusCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the status command
func (s *SessionStatusCmd) Run(cli *CLI) error {
	active := cli.Container.State.Active()
	if active == nil {
		if s.Format == "json" {
			return printJSON(cli.out(), nil)
		}
		fmt.Fprintln(cli.out(), "No running session")
		return nil
	}

	elapsed := active.ElapsedSeconds(cli.Container.Clock.Now())
	planned := active.Plan.PlannedSeconds()
	status := sessionStatus{
		ElapsedSeconds:  elapsed,
		OvertimeSeconds: domain.OvertimeSeconds(elapsed, planned),
		Plan:            active.Plan,
		Projected:       domain.ClassifyRun(elapsed, planned),
		StartTime:       active.StartTime.Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if s.Format == "json" {
		return printJSON(cli.out(), status)
	}

	out := cli.out()
	fmt.Fprintf(out, "Plan: %s (%s)\n", active.Plan.ID, active.Plan.WorkoutType)
	fmt.Fprintf(out, "Started: %s\n", active.StartTime.Local().Format(timeLayout))
	fmt.Fprintf(out, "Elapsed: %s of %s\n", domain.FormatClock(elapsed), domain.FormatClock(planned))
	if status.OvertimeSeconds > 0 {
		fmt.Fprintf(out, "Overtime: %s\n", domain.FormatClock(status.OvertimeSeconds))
	}
	fmt.Fprintf(out, "If stopped now: %s %s\n", status.Projected.Symbol(), status.Projected.Label())
	return nil
}

// SessionStopCmd finishes the running session
type SessionStopCmd struct {
	Caption string `help:"Caption for the community post"`
	Comment string `help:"Review comment"`
	Publish bool   `help:"Share the run to the community feed"`
	Rating  int    `help:"Self rating from 0 to 10"`
	Stars   int    `help:"Stars from 0 to 5"`
}

// Run executes the stop command
func (s *SessionStopCmd) Run(cli *CLI) error {
	ctx := context.Background()
	runner := cli.Container.NewRunner()
	defer runner.Close()

	if runner.Active() == nil {
		return fmt.Errorf("%w: no running session", domain.ErrInvalidState)
	}

	run, err := runner.ConfirmStop(ctx)
	if err != nil {
		return err
	}

	out := cli.out()
	fmt.Fprintf(out, "Run %s recorded: %s in %s (overtime %s)\n",
		run.ID, run.EndedStatus.Label(), domain.FormatClock(run.ActualDurationSeconds), domain.FormatClock(run.OvertimeSeconds))

	if s.Rating != 0 || s.Stars != 0 || strings.TrimSpace(s.Comment) != "" {
		reviewed, err := cli.Container.History.Review(ctx, run.ID, domain.RunReview{
			Comment: s.Comment,
			Rating:  s.Rating,
			Stars:   s.Stars,
		})
		if err != nil {
			return fmt.Errorf("run recorded but review failed: %w", err)
		}
		run = *reviewed
	}

	if s.Publish {
		post, err := cli.Container.Feed.Publish(ctx, run, s.Caption)
		if err != nil {
			return fmt.Errorf("run recorded but sharing failed: %w", err)
		}
		fmt.Fprintf(out, "Shared to the community feed as %s\n", post.ID)
	}

	user := cli.Container.State.User()
	fmt.Fprintf(out, "Discipline score %d, streak %d\n", user.DisciplineScore, user.StreakCount)
	return nil
}

// SessionCancelCmd discards the running session
type SessionCancelCmd struct{}

// Run executes the cancel command
func (s *SessionCancelCmd) Run(cli *CLI) error {
	runner := cli.Container.NewRunner()
	defer runner.Close()

	if runner.Active() == nil {
		fmt.Fprintln(cli.out(), "No running session")
		return nil
	}
	if err := runner.Cancel(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cli.out(), "Session discarded")
	return nil
}
