// ABOUTME: Terminal wizard subcommand
// ABOUTME: Wires the session store, resolver, and coordinator into the TUI
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/engrity/intake/address"
	"github.com/engrity/intake/config"
	"github.com/engrity/intake/notify"
	"github.com/engrity/intake/session"
	"github.com/engrity/intake/tui"
	"github.com/engrity/intake/wizard"
)

// WizardCommand runs the interactive seller intake flow against a running
// intake API.
func WizardCommand(cfg *config.Config) error {
	store, err := session.Open(session.DefaultDir())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() { _ = store.Close() }()

	machine, err := wizard.NewMachine(store)
	if err != nil {
		return fmt.Errorf("failed to load wizard session: %w", err)
	}

	resolver := address.NewResolver(cfg.APIBaseURL)
	leadClient := wizard.NewLeadClient(cfg.APIBaseURL)
	notifier := notify.NewEmailJSClient(cfg)
	coordinator := wizard.NewCoordinator(machine, leadClient, notifier)

	model := tui.NewModel(machine, resolver, coordinator)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard exited with error: %w", err)
	}
	return nil
}
