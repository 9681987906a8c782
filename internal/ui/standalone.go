package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CompletableModel is a form that reports when it is finished
type CompletableModel interface {
	tea.Model
	IsCompleted() bool
}

func (pf *PlanForm) IsCompleted() bool   { return pf.Completed }
func (rf *ReviewForm) IsCompleted() bool { return rf.Completed }

// Standalone runs a form as its own program and quits once it completes
type Standalone struct {
	Form CompletableModel
}

func (s *Standalone) Init() tea.Cmd {
	return s.Form.Init()
}

func (s *Standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.Form.Update(msg)
	if form, ok := model.(CompletableModel); ok {
		s.Form = form
	}
	if s.Form.IsCompleted() {
		return s, tea.Quit
	}
	return s, cmd
}

func (s *Standalone) View() string {
	if s.Form.IsCompleted() {
		return ""
	}
	return s.Form.View()
}
