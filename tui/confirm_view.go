// ABOUTME: Confirmation view shown after a successful submission
// ABOUTME: The wizard state is already reset; Enter starts a fresh intake
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderConfirmView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Thank you!"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Your home evaluation report will be sent to %s.\n", m.confirmEmail))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Enter: Start another request • q: Quit"))
	return s.String()
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		m.confirmEmail = ""
		m.viewMode = ViewAddress
		m.addressInput.SetValue("")
		m.addressInput.Focus()
		m.suggestions = nil
		m.suggestionCursor = 0
		return m, nil
	}
	return m, nil
}
