package ui

import (
	"fmt"
	"strings"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/theme"
)

// StatusBadge renders the ended status with its symbol and color
func StatusBadge(status domain.EndedStatus) string {
	text := fmt.Sprintf("%s %s", status.Symbol(), status.Label())
	switch status {
	case domain.StatusEarly:
		return theme.EarlyStyle.Render(text)
	case domain.StatusLate:
		return theme.LateStyle.Render(text)
	case domain.StatusOnTime:
		return theme.OnTimeStyle.Render(text)
	default:
		return text
	}
}

// ProgressBar renders a bar of width cells filled to percent (clamped to 0..100)
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = min(100, max(0, percent))
	filled := width * percent / 100
	return theme.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		theme.BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// planSummary is the one-line description of a plan
func planSummary(plan domain.SessionPlan) string {
	cardio := "no cardio"
	if plan.CardioPlacement != domain.CardioNone && plan.CardioMinutes > 0 {
		cardio = fmt.Sprintf("%dm cardio at %s", plan.CardioMinutes, strings.ToLower(string(plan.CardioPlacement)))
	}
	return fmt.Sprintf("%s · %s · %dm · %d exercises · %s",
		plan.WorkoutType, plan.GoalText, plan.PlannedDurationMinutes, len(plan.Exercises), cardio)
}
