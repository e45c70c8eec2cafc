// ABOUTME: Submission coordinator for finished intake sessions
// ABOUTME: Revalidates, persists the lead, and fires best-effort notification
package wizard

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"github.com/engrity/intake/models"
)

// LeadSubmitter persists a finished lead. The concrete implementation is
// the HTTP LeadClient.
type LeadSubmitter interface {
	CreateLead(ctx context.Context, lead models.Lead) (*models.Lead, error)
}

// Notifier delivers the post-submission email. Failures are an operator
// concern, never a user-facing one.
type Notifier interface {
	Send(ctx context.Context, lead models.Lead) error
}

// ErrSubmissionInFlight suppresses re-entrant submits while one is
// outstanding.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// FieldError is a validation failure tied to a specific step; the caller
// should show the message at that field after the coordinator has already
// repositioned the cursor.
type FieldError struct {
	StepID  string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Confirmation carries what the confirmation screen needs.
type Confirmation struct {
	Email string
}

// Coordinator turns a completed answer set into a stored lead plus a
// notification, reconciling the two outcomes into one user-facing result.
type Coordinator struct {
	machine   *Machine
	submitter LeadSubmitter
	notifier  Notifier

	inFlight atomic.Bool
}

func NewCoordinator(machine *Machine, submitter LeadSubmitter, notifier Notifier) *Coordinator {
	return &Coordinator{
		machine:   machine,
		submitter: submitter,
		notifier:  notifier,
	}
}

// Submit runs the full pipeline. Persistence is the authoritative success
// condition; the notification is fired after it and never awaited.
func (c *Coordinator) Submit(ctx context.Context) (*Confirmation, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	lead := c.machine.Answers().ToLead()

	// Authoritative cross-field gate. Per-step predicates can each hold
	// while the unit-number rule fails, if the user back-navigated and
	// changed the property type afterwards.
	if err := lead.Validate(); err != nil {
		if errors.Is(err, models.ErrUnitNumberRequired) {
			if jumpErr := c.machine.JumpTo(c.machine.StepIndex(models.FieldUnitNumber)); jumpErr != nil {
				log.Printf("Failed to reposition wizard: %v", jumpErr)
			}
			return nil, &FieldError{
				StepID:  models.FieldUnitNumber,
				Message: "Please enter the unit number for your property.",
			}
		}
		return nil, errors.New("Please fill all fields and give consent.")
	}

	created, err := c.submitter.CreateLead(ctx, lead)
	if err != nil {
		return nil, err
	}

	// Best-effort side effect: delivery problems must not falsify the
	// "submission received" signal.
	if c.notifier != nil {
		go func(lead models.Lead) {
			if err := c.notifier.Send(context.Background(), lead); err != nil {
				log.Printf("Notification failed for lead %s (%s): %v", lead.ID, lead.Email, err)
			}
		}(*created)
	}

	if err := c.machine.Reset(); err != nil {
		// The lead is saved; a reset failure only risks a duplicate prompt
		// next visit.
		log.Printf("Failed to reset wizard state: %v", err)
	}

	return &Confirmation{Email: lead.Email}, nil
}
