package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// DashboardCmd shows the progress dashboard in the terminal
type DashboardCmd struct{}

// Run executes the dashboard command
func (d *DashboardCmd) Run(cli *CLI) error {
	if _, err := tea.NewProgram(cli.Container.NewDashboard(), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
