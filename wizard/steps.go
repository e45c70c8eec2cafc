// ABOUTME: Static step definition table for the intake wizard
// ABOUTME: Each step binds a field id, prompt, input kind, and applicability
package wizard

import "github.com/engrity/intake/models"

// StepKind is the input type a step renders.
type StepKind int

const (
	OptionSelect StepKind = iota
	FreeText
	ContactForm
)

// StepDescriptor describes one screen of the guided flow. AppliesWhen, if
// set, is evaluated against the current answers; a step that does not apply
// is shown but never blocks progression.
type StepDescriptor struct {
	ID          string
	Prompt      string
	Kind        StepKind
	Options     []string
	AppliesWhen func(*models.AnswerSet) bool
}

// Steps returns the ordered intake flow. Defined once at process start.
func Steps() []StepDescriptor {
	return []StepDescriptor{
		{
			ID:     models.FieldPropertyType,
			Prompt: "What type of home is it?",
			Kind:   OptionSelect,
			Options: []string{
				models.PropertyApartment,
				models.PropertyCondo,
				models.PropertyDetached,
				models.PropertyTownhouse,
				models.PropertyDuplex,
				models.PropertyOther,
			},
		},
		{
			ID:     models.FieldUnitNumber,
			Prompt: "What's the unit number? (if applicable)",
			Kind:   FreeText,
			AppliesWhen: func(a *models.AnswerSet) bool {
				return models.RequiresUnitNumber(a.Get(models.FieldPropertyType))
			},
		},
		{
			ID:      models.FieldBedrooms,
			Prompt:  "How many bedrooms does your house have?",
			Kind:    OptionSelect,
			Options: []string{"1", "2", "3", "4", "5+"},
		},
		{
			ID:      models.FieldBathrooms,
			Prompt:  "How many bathrooms does your house have?",
			Kind:    OptionSelect,
			Options: []string{"1", "1.5", "2", "2.5", "3", "3.5", "4", "4.5", "5+"},
		},
		{
			ID:      models.FieldBasement,
			Prompt:  "Does your house have a basement?",
			Kind:    OptionSelect,
			Options: []string{"Yes", "No"},
		},
		{
			ID:      models.FieldBasementStatus,
			Prompt:  "What is the status of the basement?",
			Kind:    OptionSelect,
			Options: []string{"Finished", "Unfinished", "Partially Finished", "Don't Know", "Not Applicable"},
		},
		{
			ID:     models.FieldSellingTimeline,
			Prompt: "Are you thinking to sell your house?",
			Kind:   OptionSelect,
			Options: []string{
				"Yes, as soon as possible",
				"Yes, in 1-3 months",
				"Yes, in 3-6 months",
				"Yes, in 6-12 months",
				"No, just curious",
			},
		},
		{
			ID:     "basicInfo",
			Prompt: "Your contact info",
			Kind:   ContactForm,
		},
	}
}
