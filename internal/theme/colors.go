package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "208" // Orange - app name, titles
	ColorSecondary Color = "86"  // Cyan - subtitles
)

// Ended status colors
const (
	ColorEarly  Color = "33"  // Blue - finished early
	ColorLate   Color = "196" // Red - finished late
	ColorOnTime Color = "46"  // Green - inside the tolerance band
)

// Timer colors
const (
	ColorCountdown Color = "226" // Yellow
	ColorElapsed   Color = "255" // White
	ColorOvertime  Color = "214" // Amber
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorAchievement Color = "178" // Gold
	ColorBarEmpty    Color = "238" // Dark gray
	ColorBarFilled   Color = "208" // Orange
	ColorHelpGroup   Color = "141" // Purple
	ColorSpinner     Color = "205" // Pink
)
