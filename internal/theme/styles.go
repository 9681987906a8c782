package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Ended status styles
var (
	EarlyStyle = lipgloss.NewStyle().
			Foreground(ColorEarly).
			Bold(true)

	LateStyle = lipgloss.NewStyle().
			Foreground(ColorLate).
			Bold(true)

	OnTimeStyle = lipgloss.NewStyle().
			Foreground(ColorOnTime).
			Bold(true)
)

// Timer styles
var (
	CountdownStyle = lipgloss.NewStyle().
			Foreground(ColorCountdown).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCountdown)

	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorElapsed).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary)

	OvertimeStyle = lipgloss.NewStyle().
			Foreground(ColorOvertime).
			Bold(true)
)

// Checklist styles
var (
	SetDoneStyle = lipgloss.NewStyle().
			Foreground(ColorOnTime).
			Strikethrough(true)

	SetPendingStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SetCursorStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Dashboard styles
var (
	AchievementStyle = lipgloss.NewStyle().
				Foreground(ColorAchievement)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorBarEmpty)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(ColorBarFilled)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSpinner)
)

// Help screen styles
var (
	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)
)
