package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/adapters/planfile"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ui"
)

// PlansCmd manages session plans
type PlansCmd struct {
	Add    PlansAddCmd    `cmd:"add" help:"Create a plan (interactive form unless --type is given)"`
	Export PlansExportCmd `cmd:"export" help:"Write plans to a YAML file"`
	Import PlansImportCmd `cmd:"import" help:"Read plans from a YAML file"`
	List   PlansListCmd   `cmd:"list" help:"List all plans" default:"1"`
	Show   PlansShowCmd   `cmd:"show" help:"Show a specific plan"`
}

// PlansAddCmd creates a plan
type PlansAddCmd struct {
	Cardio    *int     `help:"Cardio minutes (defaults to settings)"`
	Count     int      `help:"Number of exercises to generate" default:"4"`
	Exercise  []string `help:"Exercise as NAME[:SETSxREPS], repeatable" short:"e"`
	Generate  bool     `help:"Ask the workout generator for exercises"`
	Goal      string   `help:"Training goal"`
	Minutes   *int     `help:"Planned duration in minutes (defaults to settings)" short:"m"`
	Placement string   `help:"Cardio placement: start, end or none" default:"end"`
	Type      string   `help:"Workout type: upper, lower, full or aerobics" short:"t"`
}

// Run executes the add command
func (p *PlansAddCmd) Run(cli *CLI) error {
	if p.Type == "" {
		return p.runInteractive(cli)
	}

	builder := cli.Container.NewPlanBuilder()
	workoutType, err := domain.ParseWorkoutType(p.Type)
	if err != nil {
		return err
	}
	placement, err := domain.ParseCardioPlacement(p.Placement)
	if err != nil {
		return err
	}

	builder.Draft.CardioPlacement = placement
	builder.Draft.ExerciseCount = p.Count
	builder.Draft.GoalText = p.Goal
	builder.Draft.WorkoutType = workoutType
	if p.Cardio != nil {
		builder.Draft.CardioMinutes = *p.Cardio
	}
	if p.Minutes != nil {
		builder.Draft.PlannedDurationMinutes = *p.Minutes
	}

	ctx := context.Background()
	if p.Generate {
		if err := builder.Generate(ctx); err != nil {
			if len(p.Exercise) == 0 {
				return fmt.Errorf("%w: pass --exercise to add exercises manually", err)
			}
			fmt.Fprintf(cli.out(), "Generator unavailable, using the given exercises\n")
		}
	}

	// Manual exercises are appended when generation is off or failed
	if !p.Generate || len(builder.Draft.Exercises) == 0 {
		for _, value := range p.Exercise {
			name, sets, reps, err := parseExerciseFlag(value)
			if err != nil {
				return err
			}
			if _, err := builder.AddExercise(name, sets, reps); err != nil {
				return err
			}
		}
	}

	plan, err := builder.Build()
	if err != nil {
		return err
	}
	if err := cli.Container.Catalog.Add(ctx, plan); err != nil {
		return err
	}

	fmt.Fprintf(cli.out(), "Plan %s created (%s, %d exercises, %dm)\n",
		plan.ID, plan.WorkoutType, plan.ExerciseCount, plan.PlannedDurationMinutes)
	return nil
}

func (p *PlansAddCmd) runInteractive(cli *CLI) error {
	form := ui.NewPlanForm(cli.Container.NewPlanBuilder(), cli.Container.Catalog)
	if _, err := tea.NewProgram(&ui.Standalone{Form: form}).Run(); err != nil {
		return fmt.Errorf("plan form failed: %w", err)
	}

	result := form.Result()
	switch {
	case result.Cancelled:
		fmt.Fprintln(cli.out(), "Cancelled")
		return nil
	case result.Error != nil:
		return result.Error
	case result.Plan != nil:
		fmt.Fprintf(cli.out(), "Plan %s created\n", result.Plan.ID)
	}
	return nil
}

// PlansListCmd lists plans, newest first
type PlansListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (p *PlansListCmd) Run(cli *CLI) error {
	plans := cli.Container.Catalog.List()
	if p.Format == "json" {
		return printJSON(cli.out(), plans)
	}

	if len(plans) == 0 {
		fmt.Fprintln(cli.out(), "No plans yet. Create one with 'metrogym plans add'.")
		return nil
	}

	w := newTable(cli.out())
	fmt.Fprintln(w, "ID\tTYPE\tGOAL\tEXERCISES\tPLANNED\tCARDIO\tCREATED")
	for _, plan := range plans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dm\t%s %dm\t%s\n",
			plan.ID, plan.WorkoutType, plan.GoalText, plan.ExerciseCount,
			plan.PlannedDurationMinutes, plan.CardioPlacement, plan.CardioMinutes,
			plan.CreatedAt.Local().Format(timeLayout))
	}
	return w.Flush()
}

// PlansShowCmd views a specific plan
type PlansShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Plan ID"`
}

// Run executes the show command
func (p *PlansShowCmd) Run(cli *CLI) error {
	plan, err := cli.Container.Catalog.Get(p.ID)
	if err != nil {
		return err
	}
	if p.Format == "json" {
		return printJSON(cli.out(), plan)
	}

	out := cli.out()
	fmt.Fprintf(out, "Plan: %s\n", plan.ID)
	fmt.Fprintf(out, "Workout Type: %s\n", plan.WorkoutType)
	fmt.Fprintf(out, "Goal: %s\n", plan.GoalText)
	fmt.Fprintf(out, "Planned Duration: %dm\n", plan.PlannedDurationMinutes)
	fmt.Fprintf(out, "Cardio: %s (%dm)\n", plan.CardioPlacement, plan.CardioMinutes)
	fmt.Fprintf(out, "Created: %s\n", plan.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(out, "\nExercises:\n")

	w := newTable(out)
	for i, ex := range plan.Exercises {
		fmt.Fprintf(w, "  %d.\t%s\t%d x %s\n", i+1, ex.Name, ex.Sets, ex.Reps)
	}
	return w.Flush()
}

// PlansImportCmd reads plans from YAML
type PlansImportCmd struct {
	File string `arg:"" help:"YAML file to import ('-' for stdin)"`
}

// Run executes the import command
func (p *PlansImportCmd) Run(cli *CLI) error {
	in := os.Stdin
	if p.File != "-" {
		f, err := os.Open(p.File)
		if err != nil {
			return fmt.Errorf("failed to open plan file: %w", err)
		}
		defer f.Close()
		in = f
	}

	plans, err := planfile.Decode(in, cli.Container.Clock.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()
	imported := 0
	var errs []error
	for _, plan := range plans {
		if err := cli.Container.Catalog.Add(ctx, plan); err != nil {
			logging.Logger.Warn("Skipping plan during import", "plan_id", plan.ID, "error", err)
			errs = append(errs, fmt.Errorf("plan %s: %w", plan.ID, err))
			continue
		}
		imported++
	}

	fmt.Fprintf(cli.out(), "Imported %d of %d plans\n", imported, len(plans))
	return errors.Join(errs...)
}

// PlansExportCmd writes plans as YAML
type PlansExportCmd struct {
	File string   `arg:"" optional:"" help:"Output file (stdout when omitted)"`
	IDs  []string `name:"id" help:"Only export these plan IDs, repeatable"`
}

// Run executes the export command
func (p *PlansExportCmd) Run(cli *CLI) error {
	plans := cli.Container.Catalog.List()
	if len(p.IDs) > 0 {
		selected := plans[:0]
		for _, plan := range plans {
			for _, id := range p.IDs {
				if strings.TrimSpace(id) == plan.ID {
					selected = append(selected, plan)
					break
				}
			}
		}
		plans = selected
	}

	if p.File == "" {
		return planfile.Encode(cli.out(), plans)
	}

	f, err := os.Create(p.File)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := planfile.Encode(f, plans); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Fprintf(cli.out(), "Exported %d plans to %s\n", len(plans), p.File)
	return nil
}
