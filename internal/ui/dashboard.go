package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/theme"
)

const (
	dashboardRefreshInterval = 30 * time.Second
	dashboardRecentRuns      = 8
	dashboardRecentPosts     = 5
	weeklyBarWidth           = 24
)

// DashboardConfig holds the collaborators of the dashboard
type DashboardConfig struct {
	Clock    ports.Clock
	Feed     *services.CommunityFeed
	History  *services.RunHistory
	Progress *services.ProgressService
	State    *services.AppState
}

// DashboardModel is a read-only overview of profile, progress, recent runs
// and the community feed. It reloads its state snapshot on refresh.
type DashboardModel struct {
	clock    ports.Clock
	feed     *services.CommunityFeed
	help     help.Model
	history  *services.RunHistory
	keys     DashboardKeys
	progress *services.ProgressService
	runs     table.Model
	state    *services.AppState
	width    int
}

// NewDashboardModel creates a dashboard
func NewDashboardModel(cfg DashboardConfig) *DashboardModel {
	m := &DashboardModel{
		clock:    cfg.Clock,
		feed:     cfg.Feed,
		help:     help.New(),
		history:  cfg.History,
		keys:     NewDashboardKeys(),
		progress: cfg.Progress,
		state:    cfg.State,
	}
	m.runs = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Duration", Width: 10},
			{Title: "Planned", Width: 8},
			{Title: "Status", Width: 10},
			{Title: "Rating", Width: 7},
		}),
		table.WithHeight(dashboardRecentRuns),
	)
	m.fillRuns()
	return m
}

func (m *DashboardModel) fillRuns() {
	runs := m.history.List("")
	if len(runs) > dashboardRecentRuns {
		runs = runs[:dashboardRecentRuns]
	}
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rating := "-"
		if run.SelfRating10 > 0 || run.Stars5 > 0 {
			rating = fmt.Sprintf("%d/10", run.SelfRating10)
		}
		rows = append(rows, table.Row{
			run.CreatedAt.Format("2006-01-02"),
			domain.FormatClock(run.ActualDurationSeconds),
			fmt.Sprintf("%dm", run.PlannedDurationMinutes),
			run.EndedStatus.Symbol() + " " + run.EndedStatus.Label(),
			rating,
		})
	}
	m.runs.SetRows(rows)
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(dashboardRefreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m *DashboardModel) Init() tea.Cmd {
	return scheduleRefresh()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case refreshMsg:
		m.refresh()
		return m, scheduleRefresh()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *DashboardModel) refresh() {
	m.state.Reload(context.Background())
	m.fillRuns()
}

func (m *DashboardModel) View() string {
	summary := m.progress.Summary(m.clock.Now(), "")
	user := m.state.User()

	var b strings.Builder
	b.WriteString(renderHeader(true, "Dashboard"))
	b.WriteString("\n")

	profile := lipgloss.JoinVertical(lipgloss.Left,
		theme.SubtitleStyle.Render(user.Name),
		fmt.Sprintf("%s %d", theme.LabelStyle.Render("Streak:"), summary.StreakCount),
		fmt.Sprintf("%s %d/%d", theme.LabelStyle.Render("Discipline:"), summary.DisciplineScore, domain.MaxDisciplineScore),
		fmt.Sprintf("%s %d/%d", theme.LabelStyle.Render("This week:"), summary.WeeklyCompleted, summary.WeeklyTarget),
		ProgressBar(summary.WeeklyPercent(), weeklyBarWidth),
	)
	stats := lipgloss.JoinVertical(lipgloss.Left,
		theme.SubtitleStyle.Render("Stats"),
		fmt.Sprintf("%s %d", theme.LabelStyle.Render("Workouts:"), summary.WorkoutCount),
		fmt.Sprintf("%s %dm", theme.LabelStyle.Render("Avg session:"), summary.AverageSessionMinutes),
		fmt.Sprintf("%s %dm", theme.LabelStyle.Render("Cardio:"), summary.TotalCardioMinutes),
		fmt.Sprintf("%s  %s  %s",
			theme.OnTimeStyle.Render(fmt.Sprintf("%s %d", domain.SymbolOnTime, summary.StatusCounts[domain.StatusOnTime])),
			theme.EarlyStyle.Render(fmt.Sprintf("%s %d", domain.SymbolEarly, summary.StatusCounts[domain.StatusEarly])),
			theme.LateStyle.Render(fmt.Sprintf("%s %d", domain.SymbolLate, summary.StatusCounts[domain.StatusLate]))),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PanelStyle.Render(profile),
		" ",
		theme.PanelStyle.Render(stats)))
	b.WriteString("\n")

	if len(user.Achievements) > 0 {
		badges := make([]string, 0, len(user.Achievements))
		for _, a := range user.Achievements {
			badges = append(badges, theme.AchievementStyle.Render(a.Icon+" "+a.Title))
		}
		b.WriteString(strings.Join(badges, "  "))
		b.WriteString("\n")
	}

	b.WriteString("\n" + theme.SubtitleStyle.Render("Recent runs") + "\n")
	if len(m.runs.Rows()) == 0 {
		b.WriteString(theme.MutedStyle.Render("No runs yet.") + "\n")
	} else {
		b.WriteString(m.runs.View() + "\n")
	}

	b.WriteString("\n" + theme.SubtitleStyle.Render("Community") + "\n")
	b.WriteString(renderPosts(m.feed.List(), dashboardRecentPosts))

	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderPosts lists up to limit posts, most recent first
func renderPosts(posts []domain.CommunityPost, limit int) string {
	if len(posts) == 0 {
		return theme.MutedStyle.Render("Nothing shared yet.") + "\n"
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	var b strings.Builder
	for _, p := range posts {
		b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
			theme.SubtitleStyle.Render(p.UserName),
			theme.LabelStyle.Render(string(p.WorkoutType)),
			p.Duration,
			StatusBadge(p.EndedStatus),
			theme.MutedStyle.Render(fmt.Sprintf("♥ %d", p.LikesCount))))
		b.WriteString("  " + p.Caption + "\n")
	}
	return b.String()
}
