// ABOUTME: Wizard step view rendering and key handling
// ABOUTME: Option selection, free text, contact form, and the submit screen
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/engrity/intake/models"
	"github.com/engrity/intake/wizard"
)

// prepareStep rebuilds per-step input state for the machine's current
// cursor position, preloading any previously saved answer.
func (m *Model) prepareStep() {
	step, ok := m.machine.Current()
	if !ok {
		return
	}

	answers := m.machine.Answers()

	switch step.Kind {
	case wizard.OptionSelect:
		m.optionCursor = 0
		saved := answers.Get(step.ID)
		for i, option := range step.Options {
			if option == saved {
				m.optionCursor = i
			}
		}

	case wizard.FreeText:
		input := textinput.New()
		input.Placeholder = "Type your answer..."
		input.CharLimit = 40
		input.Width = 40
		input.SetValue(answers.Get(step.ID))
		input.Focus()
		m.stepInput = input

	case wizard.ContactForm:
		m.buildContactForm()
	}
}

func (m Model) handleStepKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step, ok := m.machine.Current()
	if !ok {
		return m.handleSubmitKeys(msg)
	}

	switch step.Kind {
	case wizard.OptionSelect:
		return m.handleOptionKeys(msg, step)
	case wizard.FreeText:
		return m.handleFreeTextKeys(msg, step)
	case wizard.ContactForm:
		return m.handleContactKeys(msg)
	}
	return m, nil
}

func (m Model) handleOptionKeys(msg tea.KeyMsg, step wizard.StepDescriptor) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case "down", "j":
		if m.optionCursor < len(step.Options)-1 {
			m.optionCursor++
		}
	case "left", "esc":
		return m.retreat()
	case "enter":
		if err := m.machine.SetAnswer(step.ID, step.Options[m.optionCursor]); err != nil {
			m.statusMsg = "Could not save your answer. Please try again."
			return m, nil
		}
		return m.advance()
	}
	return m, nil
}

func (m Model) handleFreeTextKeys(msg tea.KeyMsg, step wizard.StepDescriptor) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.retreat()
	case "enter":
		value := strings.TrimSpace(m.stepInput.Value())
		if value != "" {
			if err := m.machine.SetAnswer(step.ID, value); err != nil {
				m.statusMsg = "Could not save your answer. Please try again."
				return m, nil
			}
		}
		return m.advance()
	}

	var cmd tea.Cmd
	m.stepInput, cmd = m.stepInput.Update(msg)
	return m, cmd
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if err := m.machine.Advance(); err != nil {
		if err == wizard.ErrIncompleteStep {
			m.statusMsg = "Please answer this step before continuing."
		} else {
			m.statusMsg = "Could not continue. Please try again."
		}
		return m, nil
	}
	m.statusMsg = ""
	m.prepareStep()
	return m, nil
}

func (m Model) retreat() (tea.Model, tea.Cmd) {
	if err := m.machine.Retreat(); err != nil {
		m.statusMsg = "Could not go back. Please try again."
		return m, nil
	}
	m.statusMsg = ""
	m.prepareStep()
	return m, nil
}

func (m Model) renderStepView() string {
	step, ok := m.machine.Current()
	if !ok {
		return m.renderSubmitView()
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("Step %d of %d", m.machine.Step(), m.machine.TotalSteps())))
	s.WriteString("\n")
	s.WriteString(step.Prompt)
	s.WriteString("\n\n")

	switch step.Kind {
	case wizard.OptionSelect:
		for i, option := range step.Options {
			if i == m.optionCursor {
				s.WriteString("> " + selectedStyle.Render(option))
			} else {
				s.WriteString("  " + optionStyle.Render(option))
			}
			s.WriteString("\n")
		}

	case wizard.FreeText:
		s.WriteString(m.stepInput.View())
		s.WriteString("\n")
		if step.AppliesWhen != nil && !step.AppliesWhen(m.machine.Answers()) {
			s.WriteString(helpStyle.Render("Not applicable for your property type, press Enter to skip"))
			s.WriteString("\n")
		}

	case wizard.ContactForm:
		s.WriteString(m.renderContactForm())
	}

	if m.statusMsg != "" {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}

	s.WriteString(m.renderStepHelp(step))
	return s.String()
}

func (m Model) renderStepHelp(step wizard.StepDescriptor) string {
	switch step.Kind {
	case wizard.OptionSelect:
		return helpStyle.Render("↑/↓: Choose • Enter: Next • ←: Back • q: Quit")
	case wizard.ContactForm:
		return helpStyle.Render("Tab: Next field • Space: Toggle consent • Enter: Submit • Esc: Back")
	}
	return helpStyle.Render("Enter: Next • Esc: Back")
}

func (m Model) renderSubmitView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Ready to submit"))
	s.WriteString("\n")

	answers := m.machine.Answers()
	s.WriteString(fmt.Sprintf("Address: %s\n", answers.Get(models.FieldAddress)))
	s.WriteString(fmt.Sprintf("Email:   %s\n", answers.Get(models.FieldEmail)))
	s.WriteString("\n")

	if m.submitting {
		s.WriteString("Submitting your request...\n")
	}
	if m.statusMsg != "" {
		s.WriteString(errorStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("Enter: Submit • Esc: Back • q: Quit"))
	return s.String()
}

func (m Model) handleSubmitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "left":
		return m.retreat()
	case "enter":
		m.submitting = true
		m.statusMsg = ""
		return m, m.submitCmd()
	}
	return m, nil
}
