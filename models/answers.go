// ABOUTME: Accumulated wizard answers keyed by field id
// ABOUTME: Provides answer access, mutation, and lead conversion
package models

import "strings"

// AnswerSet holds the user's responses across all steps. String answers
// live in Fields; consent is the single boolean answer.
type AnswerSet struct {
	Fields  map[string]string `json:"fields"`
	Consent bool              `json:"consent"`
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{Fields: make(map[string]string)}
}

func (a *AnswerSet) Get(key string) string {
	if a.Fields == nil {
		return ""
	}
	return a.Fields[key]
}

func (a *AnswerSet) Set(key, value string) {
	if a.Fields == nil {
		a.Fields = make(map[string]string)
	}
	a.Fields[key] = value
}

// Answered reports whether the field has a non-blank value.
func (a *AnswerSet) Answered(key string) bool {
	return strings.TrimSpace(a.Get(key)) != ""
}

// ToLead assembles the submission payload from the accumulated answers.
func (a *AnswerSet) ToLead() Lead {
	return Lead{
		Address:         a.Get(FieldAddress),
		FirstName:       a.Get(FieldFirstName),
		LastName:        a.Get(FieldLastName),
		Email:           a.Get(FieldEmail),
		Phone:           a.Get(FieldPhone),
		Consent:         a.Consent,
		Bedrooms:        a.Get(FieldBedrooms),
		Bathrooms:       a.Get(FieldBathrooms),
		Basement:        a.Get(FieldBasement),
		BasementStatus:  a.Get(FieldBasementStatus),
		SellingTimeline: a.Get(FieldSellingTimeline),
		PropertyType:    a.Get(FieldPropertyType),
		UnitNumber:      a.Get(FieldUnitNumber),
	}
}
