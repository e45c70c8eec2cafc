// ABOUTME: Data models for seller lead intake
// ABOUTME: Defines Lead, AddressSuggestion, and answer field constants
package models

import (
	"errors"
	"strings"
	"time"
)

// Lead is a finished intake record as stored by the backend.
type Lead struct {
	ID              string    `json:"id"`
	Address         string    `json:"address"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Consent         bool      `json:"consent"`
	Bedrooms        string    `json:"bedrooms,omitempty"`
	Bathrooms       string    `json:"bathrooms,omitempty"`
	Basement        string    `json:"basement,omitempty"`
	BasementStatus  string    `json:"basementStatus,omitempty"`
	SellingTimeline string    `json:"sellingTimeline,omitempty"`
	PropertyType    string    `json:"propertyType,omitempty"`
	UnitNumber      string    `json:"unitNumber,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AddressSuggestion is one autocomplete candidate. Ephemeral, never stored.
type AddressSuggestion struct {
	DisplayName string `json:"displayName"`
	PlaceID     string `json:"placeId"`
}

// Answer field keys. The wizard machine and the API payload share these.
const (
	FieldAddress         = "address"
	FieldPropertyType    = "propertyType"
	FieldUnitNumber      = "unitNumber"
	FieldBedrooms        = "bedrooms"
	FieldBathrooms       = "bathrooms"
	FieldBasement        = "basement"
	FieldBasementStatus  = "basementStatus"
	FieldSellingTimeline = "sellingTimeline"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPhone           = "phone"
)

// PropertyType constants.
const (
	PropertyApartment = "Apartment"
	PropertyCondo     = "Condo"
	PropertyDetached  = "Detached House"
	PropertyTownhouse = "Townhouse"
	PropertyDuplex    = "Duplex"
	PropertyOther     = "Others"
)

// Validation failures surfaced by Lead.Validate.
var (
	ErrMissingFields      = errors.New("address, contact fields, and consent are required")
	ErrUnitNumberRequired = errors.New("unit number is required for this property type")
)

// RequiresUnitNumber reports whether the property type makes the unit
// number mandatory.
func RequiresUnitNumber(propertyType string) bool {
	return propertyType == PropertyApartment || propertyType == PropertyCondo
}

// Validate enforces the full cross-field invariant: non-empty address and
// contact fields, consent given, and a unit number when the property type
// requires one. The unit-number failure is distinct so callers can route
// the user back to that field.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Address) == "" ||
		strings.TrimSpace(l.FirstName) == "" ||
		strings.TrimSpace(l.LastName) == "" ||
		strings.TrimSpace(l.Email) == "" ||
		strings.TrimSpace(l.Phone) == "" ||
		!l.Consent {
		return ErrMissingFields
	}

	if RequiresUnitNumber(l.PropertyType) && strings.TrimSpace(l.UnitNumber) == "" {
		return ErrUnitNumberRequired
	}

	return nil
}
