package domain

import "fmt"

// FormatClock renders seconds as H:MM:SS, or MM:SS under an hour.
// Negative values are rendered by magnitude.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatMinutes renders whole elapsed minutes as "Nm"
func FormatMinutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm", seconds/60)
}
