// ABOUTME: Wizard state machine for the guided intake flow
// ABOUTME: Owns cursor movement, step gating, and answer mutations
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/engrity/intake/models"
	"github.com/engrity/intake/session"
)

// ErrIncompleteStep is returned by Advance when the current step's
// completion predicate fails.
var ErrIncompleteStep = errors.New("current step is not complete")

// Machine drives the intake flow. All AnswerSet and cursor mutations go
// through it; every mutation is persisted to the session store.
type Machine struct {
	steps []StepDescriptor
	store *session.Store
	state *session.State
}

// NewMachine loads (or starts) a session and binds it to the step table.
func NewMachine(store *session.Store) (*Machine, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	m := &Machine{
		steps: Steps(),
		store: store,
		state: state,
	}

	// Clamp anything a stale persisted state could carry.
	if m.state.Step < 1 {
		m.state.Step = 1
	}
	if m.state.Step > m.TotalSteps()+1 {
		m.state.Step = m.TotalSteps() + 1
	}

	return m, nil
}

// TotalSteps is the number of rendered steps. Step TotalSteps+1 is the
// virtual submit-ready position.
func (m *Machine) TotalSteps() int {
	return len(m.steps)
}

func (m *Machine) Step() int {
	return m.state.Step
}

func (m *Machine) SessionID() string {
	return m.state.SessionID
}

// Current returns the descriptor for the cursor position, or false at the
// virtual submit-ready position.
func (m *Machine) Current() (StepDescriptor, bool) {
	if m.state.Step < 1 || m.state.Step > len(m.steps) {
		return StepDescriptor{}, false
	}
	return m.steps[m.state.Step-1], true
}

// Answers exposes the accumulated answer set. Mutate through SetAnswer and
// SetConsent only.
func (m *Machine) Answers() *models.AnswerSet {
	return m.state.Data
}

// EntryAllowed reports whether the flow may present any step beyond
// address entry. Re-checked on every mount since persisted state can be
// cleared externally between visits.
func (m *Machine) EntryAllowed() bool {
	return m.state.Data.Answered(models.FieldAddress)
}

func (m *Machine) SetAnswer(key, value string) error {
	m.state.Data.Set(key, value)
	return m.store.Save(m.state)
}

func (m *Machine) SetConsent(consent bool) error {
	m.state.Data.Consent = consent
	return m.store.Save(m.state)
}

// StepIndex returns the 1-based position of a step id, or 0 if unknown.
func (m *Machine) StepIndex(id string) int {
	for i, step := range m.steps {
		if step.ID == id {
			return i + 1
		}
	}
	return 0
}

// StepComplete evaluates the completion predicate for a 1-based step
// position against the current answers.
func (m *Machine) StepComplete(position int) bool {
	if position < 1 || position > len(m.steps) {
		return false
	}
	step := m.steps[position-1]
	answers := m.state.Data

	switch step.Kind {
	case OptionSelect:
		value := answers.Get(step.ID)
		for _, option := range step.Options {
			if value == option {
				return true
			}
		}
		return false

	case FreeText:
		// A step that does not apply never blocks progression, even though
		// it is still shown.
		if step.AppliesWhen != nil && !step.AppliesWhen(answers) {
			return true
		}
		return strings.TrimSpace(answers.Get(step.ID)) != ""

	case ContactForm:
		return answers.Answered(models.FieldFirstName) &&
			answers.Answered(models.FieldLastName) &&
			answers.Answered(models.FieldEmail) &&
			answers.Answered(models.FieldPhone) &&
			answers.Consent
	}

	return false
}

// Advance moves the cursor forward. It is a no-op error when the current
// step is incomplete; the caller surfaces a validation message.
func (m *Machine) Advance() error {
	if m.state.Step > len(m.steps) {
		return fmt.Errorf("already past the final step")
	}
	if !m.StepComplete(m.state.Step) {
		return ErrIncompleteStep
	}

	m.state.Step++
	return m.store.Save(m.state)
}

// Retreat moves the cursor back without validating the step being left.
// No-op at step 1.
func (m *Machine) Retreat() error {
	if m.state.Step <= 1 {
		return nil
	}

	m.state.Step--
	return m.store.Save(m.state)
}

// JumpTo positions the cursor directly, used for corrective jumps after a
// cross-field failure at submission time.
func (m *Machine) JumpTo(position int) error {
	if position < 1 || position > len(m.steps)+1 {
		return fmt.Errorf("step %d out of range", position)
	}

	m.state.Step = position
	return m.store.Save(m.state)
}

// Reset clears all answers and returns to step 1 under a new session id.
func (m *Machine) Reset() error {
	m.state = session.NewState()
	return m.store.Save(m.state)
}
