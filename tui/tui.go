// ABOUTME: Terminal intake interface using bubbletea framework
// ABOUTME: Guides a seller from address entry through property steps to submission
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/engrity/intake/address"
	"github.com/engrity/intake/models"
	"github.com/engrity/intake/wizard"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewAddress ViewMode = iota
	ViewStep
	ViewConfirm
)

// Model is the main bubbletea model
type Model struct {
	machine     *wizard.Machine
	resolver    *address.Resolver
	coordinator *wizard.Coordinator

	viewMode ViewMode

	// Address view state
	addressInput     textinput.Model
	suggestions      []models.AddressSuggestion
	suggestionCursor int
	verifying        bool

	// Step view state
	optionCursor int
	stepInput    textinput.Model

	// Contact form state
	formInputs []textinput.Model
	focusIndex int

	// Submission state
	submitting   bool
	confirmEmail string

	statusMsg string
	width     int
	height    int
}

// NewModel creates a new TUI model. A resumed session with a verified
// address re-enters the wizard directly; otherwise the flow starts at
// address entry.
func NewModel(machine *wizard.Machine, resolver *address.Resolver, coordinator *wizard.Coordinator) Model {
	addressInput := textinput.New()
	addressInput.Placeholder = "Start typing your address..."
	addressInput.Focus()
	addressInput.CharLimit = 120
	addressInput.Width = 60

	m := Model{
		machine:      machine,
		resolver:     resolver,
		coordinator:  coordinator,
		viewMode:     ViewAddress,
		addressInput: addressInput,
		width:        80,
		height:       24,
	}

	// Entry gating is re-checked on every mount, not trusted from a
	// previous run.
	if machine.EntryAllowed() {
		m.viewMode = ViewStep
		m.prepareStep()
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case suggestionsMsg:
		return m.handleSuggestions(msg)
	case verifyMsg:
		return m.handleVerify(msg)
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewAddress:
		return m.renderAddressView()
	case ViewStep:
		return m.renderStepView()
	case ViewConfirm:
		return m.renderConfirmView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewAddress:
		return m.handleAddressKeys(msg)
	case ViewStep:
		return m.handleStepKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	optionStyle = lipgloss.NewStyle().
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
