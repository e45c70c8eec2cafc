// ABOUTME: Address entry view with debounced suggestions
// ABOUTME: Gate into the wizard; only verified service-area addresses pass
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/engrity/intake/models"
)

type suggestionsMsg struct {
	suggestions []models.AddressSuggestion
	applied     bool
}

type verifyMsg struct {
	suggestion models.AddressSuggestion
	valid      bool
}

func (m Model) suggestCmd(query string) tea.Cmd {
	return func() tea.Msg {
		suggestions, applied := m.resolver.Suggest(context.Background(), query)
		return suggestionsMsg{suggestions: suggestions, applied: applied}
	}
}

func (m Model) verifyCmd(suggestion models.AddressSuggestion) tea.Cmd {
	return func() tea.Msg {
		valid := m.resolver.Verify(context.Background(), suggestion.PlaceID)
		return verifyMsg{suggestion: suggestion, valid: valid}
	}
}

func (m Model) handleAddressKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.verifying {
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		if m.addressInput.Value() == "" {
			return m, tea.Quit
		}
	case "up":
		if m.suggestionCursor > 0 {
			m.suggestionCursor--
		}
		return m, nil
	case "down":
		if m.suggestionCursor < len(m.suggestions)-1 {
			m.suggestionCursor++
		}
		return m, nil
	case "enter":
		if len(m.suggestions) == 0 {
			return m, nil
		}
		m.verifying = true
		m.statusMsg = ""
		return m, m.verifyCmd(m.suggestions[m.suggestionCursor])
	}

	var cmd tea.Cmd
	before := m.addressInput.Value()
	m.addressInput, cmd = m.addressInput.Update(msg)

	if m.addressInput.Value() != before {
		m.statusMsg = ""
		return m, tea.Batch(cmd, m.suggestCmd(m.addressInput.Value()))
	}
	return m, cmd
}

func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	// Superseded lookups are dropped; only the latest query's result lands.
	if !msg.applied {
		return m, nil
	}
	m.suggestions = msg.suggestions
	m.suggestionCursor = 0
	return m, nil
}

func (m Model) handleVerify(msg verifyMsg) (tea.Model, tea.Cmd) {
	m.verifying = false

	if !msg.valid {
		m.statusMsg = "Sorry, we only serve addresses in Canada."
		return m, nil
	}

	if err := m.machine.SetAnswer(models.FieldAddress, msg.suggestion.DisplayName); err != nil {
		m.statusMsg = "Could not save your address. Please try again."
		return m, nil
	}

	m.viewMode = ViewStep
	m.suggestions = nil
	m.statusMsg = ""
	m.prepareStep()
	return m, nil
}

func (m Model) renderAddressView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Where is your home?"))
	s.WriteString("\n\n")
	s.WriteString(m.addressInput.View())
	s.WriteString("\n\n")

	if m.verifying {
		s.WriteString("Checking address...\n")
	}

	for i, suggestion := range m.suggestions {
		if i == m.suggestionCursor {
			s.WriteString(selectedStyle.Render(suggestion.DisplayName))
		} else {
			s.WriteString(optionStyle.Render(suggestion.DisplayName))
		}
		s.WriteString("\n")
	}

	if m.statusMsg != "" {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: Choose suggestion • Enter: Select • Ctrl+C: Quit"))
	return s.String()
}
