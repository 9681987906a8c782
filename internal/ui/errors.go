package ui

import (
	"errors"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/theme"
)

const (
	maxErrorLines = 2
	minErrorWidth = 20
)

// formatErrorForDisplay renders err wrapped to width, at most maxErrorLines tall
func formatErrorForDisplay(err error, width int) string {
	if err == nil {
		return ""
	}
	return theme.ErrorStyle.
		Width(max(minErrorWidth, width)).
		MaxHeight(maxErrorLines).
		Render("Error: " + userMessage(err))
}

// userMessage replaces sentinel chains with a sentence a person can act on
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return "workout generator unavailable, add exercises manually"
	case errors.Is(err, domain.ErrEmptyPlan):
		return "add at least one exercise"
	case errors.Is(err, domain.ErrInvalidState):
		return "a session is already running; resume or cancel it first"
	default:
		return err.Error()
	}
}
