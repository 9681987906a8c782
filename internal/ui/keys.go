package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyDefinition defines the metadata for a key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// AllKeyDefinitions contains every key binding used by the TUI screens
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "help", Defaults: []string{"?"}, Help: "toggle help"},
	{Name: "quit", Defaults: []string{"q", "ctrl+c"}, Help: "quit (session keeps running)"},
	{Name: "refresh", Defaults: []string{"r"}, Help: "refresh"},

	// Navigation keys
	{Name: "down", Defaults: []string{"down", "j"}, Help: "next set"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "previous set"},

	// Session keys
	{Name: "cancel_session", Defaults: []string{"x"}, Help: "cancel session"},
	{Name: "stop", Defaults: []string{"s"}, Help: "stop session"},
	{Name: "toggle_set", Defaults: []string{" ", "enter"}, Help: "toggle set done"},

	// Confirmation keys
	{Name: "confirm", Defaults: []string{"y"}, Help: "confirm"},
	{Name: "deny", Defaults: []string{"n", "esc"}, Help: "go back"},
}

// binding builds a key.Binding from its definition
func binding(name string) key.Binding {
	for _, def := range AllKeyDefinitions {
		if def.Name != name {
			continue
		}
		helpKey := def.Defaults[0]
		if helpKey == " " {
			helpKey = "space"
		}
		return key.NewBinding(
			key.WithKeys(def.Defaults...),
			key.WithHelp(helpKey, def.Help),
		)
	}
	return key.NewBinding(key.WithDisabled())
}

// SessionKeys are the bindings of the active session screen
type SessionKeys struct {
	Cancel    key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
	Stop      key.Binding
	ToggleSet key.Binding
	Up        key.Binding
}

// NewSessionKeys creates the session key bindings
func NewSessionKeys() SessionKeys {
	return SessionKeys{
		Cancel:    binding("cancel_session"),
		Confirm:   binding("confirm"),
		Deny:      binding("deny"),
		Down:      binding("down"),
		Help:      binding("help"),
		Quit:      binding("quit"),
		Stop:      binding("stop"),
		ToggleSet: binding("toggle_set"),
		Up:        binding("up"),
	}
}

// ShortHelp implements help.KeyMap
func (k SessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Cancel, k.ToggleSet, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap
func (k SessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ToggleSet},
		{k.Stop, k.Cancel},
		{k.Quit, k.Help},
	}
}

// DashboardKeys are the bindings of the read-only dashboard
type DashboardKeys struct {
	Help    key.Binding
	Quit    key.Binding
	Refresh key.Binding
}

// NewDashboardKeys creates the dashboard key bindings
func NewDashboardKeys() DashboardKeys {
	return DashboardKeys{
		Help:    binding("help"),
		Quit:    binding("quit"),
		Refresh: binding("refresh"),
	}
}

// ShortHelp implements help.KeyMap
func (k DashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap
func (k DashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh}, {k.Quit, k.Help}}
}
