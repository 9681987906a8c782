package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// tickMsg carries one timer tick together with the ticker that produced it,
// so ticks from a released ticker can be told apart and dropped.
type tickMsg struct {
	at     time.Time
	ticker ports.Ticker
}

// waitForTick blocks on the ticker until it fires or is stopped.
// A stopped ticker produces no message.
func waitForTick(ticker ports.Ticker) tea.Cmd {
	if ticker == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case at := <-ticker.C():
			return tickMsg{at: at, ticker: ticker}
		case <-ticker.Done():
			return nil
		}
	}
}

// refreshMsg asks the dashboard to reload its snapshot
type refreshMsg struct{}
