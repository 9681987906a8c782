package server

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
)

// DashboardFactory builds a dashboard over a fresh state snapshot.
// The returned closer releases whatever the dashboard holds open.
type DashboardFactory func() (tea.Model, io.Closer, error)

// teaHandler creates a dashboard model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model, closer, err := s.dashboards()
	if err != nil {
		logging.Logger.Error("Failed to open dashboard for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	go releaseOnDisconnect(sess, closer, sessionID, time.Now())

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// releaseOnDisconnect closes the session's resources once the connection ends
func releaseOnDisconnect(sess ssh.Session, closer io.Closer, sessionID string, started time.Time) {
	<-sess.Context().Done()

	if closer != nil {
		if err := closer.Close(); err != nil {
			logging.Logger.Error("Failed to release SSH session resources",
				"error", err,
				"session_id", sessionID)
		}
	}
	logging.Logger.Info("SSH session ended",
		"session_id", sessionID,
		"duration", time.Since(started).String())
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return e, tea.Quit
	}
	return e, nil
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n\nPress any key to disconnect.\n", e.err)
}
