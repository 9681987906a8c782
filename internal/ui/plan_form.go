package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/theme"
)

type planStep int

const (
	stepDetails planStep = iota
	stepGenerating
	stepExercises
	stepDone
)

// generatedMsg reports the outcome of a generation request
type generatedMsg struct {
	err error
}

// PlanFormResult contains the result of the plan form
type PlanFormResult struct {
	Cancelled bool
	Error     error
	Plan      *domain.SessionPlan
}

// PlanForm walks through plan details, optional generation and manual
// exercise entry, then saves the plan to the catalog.
type PlanForm struct {
	Completed      bool
	builder        *services.PlanBuilder
	cardioMinutes  string
	catalog        *services.PlanCatalog
	details        *huh.Form
	exerciseCount  string
	exerciseForm   *huh.Form
	exerciseInput  exerciseInput
	generate       bool
	generateErr    error
	plannedMinutes string
	result         PlanFormResult
	spinner        spinner.Model
	step           planStep
}

type exerciseInput struct {
	more bool
	name string
	reps string
	sets string
}

// NewPlanForm creates a plan form over builder
func NewPlanForm(builder *services.PlanBuilder, catalog *services.PlanCatalog) *PlanForm {
	pf := &PlanForm{
		builder:        builder,
		cardioMinutes:  strconv.Itoa(builder.Draft.CardioMinutes),
		catalog:        catalog,
		exerciseCount:  strconv.Itoa(builder.Draft.ExerciseCount),
		generate:       true,
		plannedMinutes: strconv.Itoa(builder.Draft.PlannedDurationMinutes),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.SpinnerStyle)),
	}

	workoutOptions := make([]huh.Option[domain.WorkoutType], 0, len(domain.WorkoutTypes))
	for _, wt := range domain.WorkoutTypes {
		workoutOptions = append(workoutOptions, huh.NewOption(string(wt), wt))
	}
	cardioOptions := make([]huh.Option[domain.CardioPlacement], 0, len(domain.CardioPlacements))
	for _, cp := range domain.CardioPlacements {
		cardioOptions = append(cardioOptions, huh.NewOption(string(cp), cp))
	}

	pf.details = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.WorkoutType]().
				Title("Workout type").
				Options(workoutOptions...).
				Value(&builder.Draft.WorkoutType),
			huh.NewInput().
				Title("Goal").
				Placeholder(services.DefaultGoal).
				Value(&builder.Draft.GoalText),
			huh.NewInput().
				Title("Planned duration (minutes)").
				Validate(positiveInt).
				Value(&pf.plannedMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[domain.CardioPlacement]().
				Title("Cardio").
				Options(cardioOptions...).
				Value(&builder.Draft.CardioPlacement),
			huh.NewInput().
				Title("Cardio minutes").
				Validate(nonNegativeInt).
				Value(&pf.cardioMinutes),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Number of exercises").
				Validate(positiveInt).
				Value(&pf.exerciseCount),
			huh.NewConfirm().
				Title("Generate exercises automatically?").
				Description("Falls back to manual entry when the generator is unavailable").
				Value(&pf.generate),
		),
	)

	return pf
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number above zero")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter a whole number, zero or more")
	}
	return nil
}

func (pf *PlanForm) newExerciseForm() *huh.Form {
	pf.exerciseInput = exerciseInput{sets: strconv.Itoa(services.DefaultSets), reps: services.DefaultReps}
	title := fmt.Sprintf("Exercise %d", len(pf.builder.Draft.Exercises)+1)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Bench Press").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}).
				Value(&pf.exerciseInput.name),
			huh.NewInput().
				Title("Sets").
				Validate(nonNegativeInt).
				Value(&pf.exerciseInput.sets),
			huh.NewInput().
				Title("Reps").
				Description("A number, a range like 8-12, or text like max").
				Value(&pf.exerciseInput.reps),
			huh.NewConfirm().
				Title("Add another exercise?").
				Value(&pf.exerciseInput.more),
		),
	)
}

func (pf *PlanForm) Init() tea.Cmd {
	return pf.details.Init()
}

func (pf *PlanForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			pf.result.Cancelled = true
			pf.Completed = true
			return pf, nil
		}
	}

	switch pf.step {
	case stepDetails:
		return pf.updateDetails(msg)
	case stepGenerating:
		return pf.updateGenerating(msg)
	case stepExercises:
		return pf.updateExercises(msg)
	}
	return pf, nil
}

func (pf *PlanForm) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := pf.details.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		pf.details = f
	}
	if pf.details.State != huh.StateCompleted {
		return pf, cmd
	}

	pf.builder.Draft.PlannedDurationMinutes, _ = strconv.Atoi(strings.TrimSpace(pf.plannedMinutes))
	pf.builder.Draft.CardioMinutes, _ = strconv.Atoi(strings.TrimSpace(pf.cardioMinutes))
	pf.builder.Draft.ExerciseCount, _ = strconv.Atoi(strings.TrimSpace(pf.exerciseCount))

	if pf.generate {
		pf.step = stepGenerating
		builder := pf.builder
		return pf, tea.Batch(pf.spinner.Tick, func() tea.Msg {
			return generatedMsg{err: builder.Generate(context.Background())}
		})
	}
	return pf, pf.startManualEntry()
}

func (pf *PlanForm) updateGenerating(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		pf.spinner, cmd = pf.spinner.Update(msg)
		return pf, cmd
	case generatedMsg:
		if msg.err != nil {
			pf.generateErr = msg.err
			return pf, pf.startManualEntry()
		}
		pf.finish()
		return pf, nil
	}
	return pf, nil
}

func (pf *PlanForm) startManualEntry() tea.Cmd {
	pf.step = stepExercises
	pf.exerciseForm = pf.newExerciseForm()
	return pf.exerciseForm.Init()
}

func (pf *PlanForm) updateExercises(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := pf.exerciseForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		pf.exerciseForm = f
	}
	if pf.exerciseForm.State != huh.StateCompleted {
		return pf, cmd
	}

	sets, _ := strconv.Atoi(strings.TrimSpace(pf.exerciseInput.sets))
	if _, err := pf.builder.AddExercise(pf.exerciseInput.name, sets, pf.exerciseInput.reps); err != nil {
		logging.Logger.Warn("Rejected exercise", "error", err)
		pf.generateErr = err
	}

	if pf.exerciseInput.more {
		pf.exerciseForm = pf.newExerciseForm()
		return pf, pf.exerciseForm.Init()
	}
	pf.finish()
	return pf, nil
}

// finish builds the plan and adds it to the catalog
func (pf *PlanForm) finish() {
	pf.step = stepDone
	pf.Completed = true

	plan, err := pf.builder.Build()
	if err != nil {
		pf.result.Error = err
		return
	}
	if err := pf.catalog.Add(context.Background(), plan); err != nil {
		logging.Logger.Error("Failed to save plan", "error", err)
		pf.result.Error = err
		return
	}
	pf.result.Plan = &plan
}

func (pf *PlanForm) View() string {
	switch pf.step {
	case stepDetails:
		return renderHeader(false, "New plan") + "\n" + pf.details.View()
	case stepGenerating:
		return renderHeader(false, "New plan") + "\n" + pf.spinner.View() + " Generating exercises..."
	case stepExercises:
		view := renderHeader(false, "Add exercises") + "\n"
		if pf.generateErr != nil {
			view += formatErrorForDisplay(pf.generateErr, 80) + "\n\n"
		}
		return view + pf.exerciseForm.View()
	}
	return ""
}

// Result returns the form result
func (pf *PlanForm) Result() PlanFormResult {
	return pf.result
}
