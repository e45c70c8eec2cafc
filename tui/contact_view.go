// ABOUTME: Contact form rendering, focus cycling, and submission wiring
// ABOUTME: Final wizard step; collects name, email, phone, and consent
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/engrity/intake/models"
	"github.com/engrity/intake/wizard"
)

var contactFields = []struct {
	key         string
	placeholder string
}{
	{models.FieldFirstName, "First name"},
	{models.FieldLastName, "Last name"},
	{models.FieldEmail, "Email"},
	{models.FieldPhone, "Phone"},
}

type submitResultMsg struct {
	confirmation *wizard.Confirmation
	err          error
}

func (m *Model) buildContactForm() {
	answers := m.machine.Answers()

	m.formInputs = make([]textinput.Model, len(contactFields))
	for i, field := range contactFields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 80
		input.Width = 40
		input.SetValue(answers.Get(field.key))
		m.formInputs[i] = input
	}
	m.focusIndex = 0
	m.formInputs[0].Focus()
}

// consentRow is the focus position after the last text input.
func (m Model) consentRow() int {
	return len(m.formInputs)
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) handleContactKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.saveContactFields()
		return m.retreat()
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % (len(m.formInputs) + 1)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex--
		if m.focusIndex < 0 {
			m.focusIndex = len(m.formInputs)
		}
		m.updateFormFocus()
		return m, nil
	case " ":
		if m.focusIndex == m.consentRow() {
			if err := m.machine.SetConsent(!m.machine.Answers().Consent); err != nil {
				m.statusMsg = "Could not save your answer. Please try again."
			}
			return m, nil
		}
	case "enter":
		if err := m.saveContactFields(); err != nil {
			m.statusMsg = "Could not save your answers. Please try again."
			return m, nil
		}
		m.submitting = true
		m.statusMsg = ""
		return m, m.submitCmd()
	}

	if m.focusIndex < len(m.formInputs) {
		var cmd tea.Cmd
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) saveContactFields() error {
	for i, field := range contactFields {
		value := strings.TrimSpace(m.formInputs[i].Value())
		if err := m.machine.SetAnswer(field.key, value); err != nil {
			return err
		}
	}
	return nil
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		confirmation, err := m.coordinator.Submit(context.Background())
		return submitResultMsg{confirmation: confirmation, err: err}
	}
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		var fieldErr *wizard.FieldError
		switch {
		case errors.As(msg.err, &fieldErr):
			// The coordinator already repositioned the cursor at the
			// offending step; rebuild its inputs and show the message there.
			m.statusMsg = fieldErr.Message
			m.prepareStep()
		case errors.Is(msg.err, wizard.ErrSubmissionInFlight):
			m.statusMsg = "Your request is already being submitted."
		default:
			m.statusMsg = msg.err.Error()
		}
		return m, nil
	}

	m.confirmEmail = msg.confirmation.Email
	m.viewMode = ViewConfirm
	m.statusMsg = ""
	return m, nil
}

func (m Model) renderContactForm() string {
	var s strings.Builder

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	consent := "[ ]"
	if m.machine.Answers().Consent {
		consent = "[x]"
	}
	marker := "  "
	if m.focusIndex == m.consentRow() {
		marker = "> "
	}
	s.WriteString(marker + consent + " I agree to be contacted about my home evaluation\n")

	return s.String()
}
