package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/theme"
)

const progressBarWidth = 40

// setItem is one line of the set checklist
type setItem struct {
	done     bool
	exercise string
	reps     string
	set      int
	sets     int
}

// SessionOutcome tells the caller how the session screen ended
type SessionOutcome int

const (
	// OutcomeDetached means the user quit while the session keeps running
	OutcomeDetached SessionOutcome = iota
	OutcomeCancelled
	OutcomeCompleted
)

// SessionModelConfig holds the collaborators of the session screen
type SessionModelConfig struct {
	Feed    *services.CommunityFeed
	History *services.RunHistory
	Runner  *services.SessionRunner
}

// SessionModel is the active session screen: countdown, clock, overtime and
// a per-set checklist. After a confirmed stop it hands over to ReviewForm.
type SessionModel struct {
	checklist        []setItem
	confirmingCancel bool
	cursor           int
	err              error
	feed             *services.CommunityFeed
	help             help.Model
	history          *services.RunHistory
	keys             SessionKeys
	outcome          SessionOutcome
	review           *ReviewForm
	runner           *services.SessionRunner
	width            int
}

// NewSessionModel creates the session screen for the runner's active session
func NewSessionModel(cfg SessionModelConfig) *SessionModel {
	m := &SessionModel{
		feed:    cfg.Feed,
		help:    help.New(),
		history: cfg.History,
		keys:    NewSessionKeys(),
		runner:  cfg.Runner,
	}
	if active := cfg.Runner.Active(); active != nil {
		m.checklist = buildChecklist(active.Plan)
	}
	return m
}

func buildChecklist(plan domain.SessionPlan) []setItem {
	items := make([]setItem, 0, plan.TotalSets())
	for _, ex := range plan.Exercises {
		for set := 1; set <= ex.Sets; set++ {
			items = append(items, setItem{exercise: ex.Name, reps: ex.Reps, set: set, sets: ex.Sets})
		}
	}
	return items
}

// Outcome reports how the screen ended
func (m *SessionModel) Outcome() SessionOutcome {
	return m.outcome
}

// Err returns the last error shown on the screen, such as a failed cancel
func (m *SessionModel) Err() error {
	return m.err
}

// Review returns the review form shown after completion, or nil
func (m *SessionModel) Review() *ReviewForm {
	return m.review
}

func (m *SessionModel) Init() tea.Cmd {
	return waitForTick(m.runner.Ticker())
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.help.Width = size.Width
	}

	if m.review != nil {
		return m.updateReview(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		if msg.ticker != m.runner.Ticker() {
			return m, nil
		}
		m.runner.Tick()
		return m, waitForTick(m.runner.Ticker())
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if key.Matches(msg, m.keys.Quit) {
		m.runner.Close()
		m.outcome = OutcomeDetached
		logging.Logger.Info("Left session screen, session keeps running")
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.confirmingCancel {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if err := m.runner.Cancel(ctx); err != nil {
				logging.Logger.Error("Failed to cancel session", "error", err)
				m.err = err
			}
			m.outcome = OutcomeCancelled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Deny):
			m.confirmingCancel = false
		}
		return m, nil
	}

	switch m.runner.State() {
	case domain.RunnerStopRequested:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.confirmStop(ctx)
		case key.Matches(msg, m.keys.Deny):
			if err := m.runner.CancelStopRequest(); err != nil {
				m.err = err
				return m, nil
			}
			return m, waitForTick(m.runner.Ticker())
		}
	case domain.RunnerActive:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if err := m.runner.RequestStop(); err != nil {
				m.err = err
			}
		case key.Matches(msg, m.keys.Cancel):
			m.confirmingCancel = true
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(len(m.checklist)-1, m.cursor+1)
		case key.Matches(msg, m.keys.ToggleSet):
			if m.cursor >= 0 && m.cursor < len(m.checklist) {
				m.checklist[m.cursor].done = !m.checklist[m.cursor].done
			}
		}
	case domain.RunnerCountdown:
		if key.Matches(msg, m.keys.Cancel) {
			m.confirmingCancel = true
		}
	}
	return m, nil
}

func (m *SessionModel) confirmStop(ctx context.Context) (tea.Model, tea.Cmd) {
	run, err := m.runner.ConfirmStop(ctx)
	if err != nil {
		logging.Logger.Error("Failed to finish session", "error", err)
		m.err = err
		return m, nil
	}
	m.err = nil
	m.outcome = OutcomeCompleted
	m.review = NewReviewForm(m.history, m.feed, run)
	return m, m.review.Init()
}

func (m *SessionModel) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.review.Update(msg)
	if form, ok := model.(*ReviewForm); ok {
		m.review = form
	}
	if m.review.Completed {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *SessionModel) View() string {
	var b strings.Builder

	if m.review != nil {
		b.WriteString(renderHeader(false, "Session complete"))
		b.WriteString("\n")
		b.WriteString(m.renderRunSummary(m.review.Run()))
		b.WriteString("\n\n")
		b.WriteString(m.review.View())
		return b.String()
	}

	active := m.runner.Active()
	subtitle := "Workout"
	if active != nil {
		subtitle = string(active.Plan.WorkoutType)
	}
	b.WriteString(renderHeader(false, subtitle))
	b.WriteString("\n")

	if active == nil {
		b.WriteString(theme.MutedStyle.Render("No active session."))
		return b.String()
	}

	b.WriteString(theme.LabelStyle.Render(planSummary(active.Plan)))
	b.WriteString("\n\n")

	switch m.runner.State() {
	case domain.RunnerCountdown:
		b.WriteString(theme.CountdownStyle.Render(fmt.Sprintf("Starting in %d", m.runner.Countdown())))
	default:
		b.WriteString(m.renderClock(active.Plan))
	}
	b.WriteString("\n\n")

	if m.runner.State() == domain.RunnerStopRequested {
		b.WriteString(theme.SubtitleStyle.Render("Finish this session? (y/n)"))
		b.WriteString("\n\n")
	}
	if m.confirmingCancel {
		b.WriteString(theme.ErrorStyle.Render("Discard this session without saving? (y/n)"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderChecklist())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(formatErrorForDisplay(m.err, m.width))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *SessionModel) renderClock(plan domain.SessionPlan) string {
	elapsed := m.runner.ElapsedSeconds()
	planned := plan.PlannedSeconds()

	clock := theme.ClockStyle.Render(domain.FormatClock(elapsed))
	target := theme.LabelStyle.Render(" / " + domain.FormatClock(planned))
	line := lipgloss.JoinHorizontal(lipgloss.Center, clock, target)

	percent := 0
	if planned > 0 {
		percent = elapsed * 100 / planned
	}
	line += "\n" + ProgressBar(percent, progressBarWidth)

	if overtime := m.runner.OvertimeSeconds(); overtime > 0 {
		line += "  " + theme.OvertimeStyle.Render("+"+domain.FormatClock(overtime)+" overtime")
	}
	line += "  " + StatusBadge(domain.ClassifyRun(elapsed, planned))
	return line
}

func (m *SessionModel) renderChecklist() string {
	if len(m.checklist) == 0 {
		return ""
	}

	var b strings.Builder
	done := 0
	for i, item := range m.checklist {
		if item.done {
			done++
		}
		box := "[ ]"
		style := theme.SetPendingStyle
		if item.done {
			box = "[x]"
			style = theme.SetDoneStyle
		}
		cursor := "  "
		if i == m.cursor {
			cursor = theme.SetCursorStyle.Render("> ")
		}
		b.WriteString(cursor + box + " " + style.Render(fmt.Sprintf("%s  set %d/%d  × %s", item.exercise, item.set, item.sets, item.reps)) + "\n")
	}
	b.WriteString(theme.LabelStyle.Render(fmt.Sprintf("%d/%d sets done", done, len(m.checklist))))
	b.WriteString("\n")
	return b.String()
}

func (m *SessionModel) renderRunSummary(run domain.SessionRun) string {
	lines := []string{
		StatusBadge(run.EndedStatus),
		theme.LabelStyle.Render("Duration: ") + domain.FormatClock(run.ActualDurationSeconds) +
			theme.LabelStyle.Render(fmt.Sprintf(" (planned %dm)", run.PlannedDurationMinutes)),
	}
	if run.OvertimeSeconds > 0 {
		lines = append(lines, theme.OvertimeStyle.Render("Overtime: +"+domain.FormatClock(run.OvertimeSeconds)))
	}
	return strings.Join(lines, "\n")
}
