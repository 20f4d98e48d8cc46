package intake

import (
	"context"
	"strings"
)

const (
	promptNationalNumber = "National Number:\t"
	promptPhoneNumber    = "Phone Number:\t"
	promptEmail          = "Email Address:\t"
	promptMissingPhone   = "Phone number: "
	promptMissingEmail   = "Email address: "
	promptSelectPatient  = "Select patient"
	promptDoctorName     = "Doctor (lastname firstname, empty if none): "

	msgNationalNumberMismatch = "The national numbers do not match! Did you select the correct patient?"
)

// Contact is what the scheduling system knows about the selected patient.
type Contact struct {
	NationalNumber string
	Phone          string
	Email          string
}

// ContactSource reads the patient currently selected in the scheduling system.
type ContactSource interface {
	Contact(ctx context.Context) (Contact, error)
	// DoctorName returns the free-text doctor selected for the patient, or ""
	// when none is selected.
	DoctorName(ctx context.Context) (string, error)
}

// normalize blanks fields that merely echo another one. The scheduling UI
// leaves the previous value in place when a field is empty, so a phone equal
// to the national number, or an email equal to either, means "not set".
func (c Contact) normalize() Contact {
	if c.Phone == c.NationalNumber {
		c.Phone = ""
	}
	if c.Email == c.Phone || c.Email == c.NationalNumber {
		c.Email = ""
	}
	return c
}

// ConsoleContacts asks the operator for the contact details. It stands in
// for the scheduling system when that UI cannot be read.
type ConsoleContacts struct {
	operator Operator
}

func NewConsoleContacts(operator Operator) *ConsoleContacts {
	return &ConsoleContacts{operator: operator}
}

func (c *ConsoleContacts) Contact(ctx context.Context) (Contact, error) {
	for {
		var contact Contact
		var err error
		if contact.NationalNumber, err = c.operator.Ask(ctx, promptNationalNumber); err != nil {
			return Contact{}, err
		}
		if contact.Phone, err = c.operator.Ask(ctx, promptPhoneNumber); err != nil {
			return Contact{}, err
		}
		if contact.Email, err = c.operator.Ask(ctx, promptEmail); err != nil {
			return Contact{}, err
		}
		ok, err := c.operator.Confirm(ctx, "")
		if err != nil {
			return Contact{}, err
		}
		if ok {
			return contact, nil
		}
	}
}

func (c *ConsoleContacts) DoctorName(ctx context.Context) (string, error) {
	name, err := c.operator.Ask(ctx, promptDoctorName)
	return strings.TrimSpace(name), err
}
