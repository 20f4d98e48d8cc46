package intake

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Identity is the patient data read from the identity card.
type Identity struct {
	NationalNumber  string
	Name            string
	FirstName       string
	DateOfBirth     string
	Gender          string
	StreetAndNumber string
	Zip             string
	Municipality    string
	// Attributes holds every exported value by its export name.
	Attributes map[string]string
}

// Address renders the address on one line.
func (i Identity) Address() string {
	return strings.Join(strings.Fields(i.StreetAndNumber+" "+i.Zip+" "+i.Municipality), " ")
}

// IdentitySource reads the identity card of the next patient.
type IdentitySource interface {
	ReadIdentity(ctx context.Context) (Identity, error)
}

// eidDocument mirrors the card viewer export: identity and address sections
// carrying values both as attributes and as child elements.
type eidDocument struct {
	XMLName  xml.Name   `xml:"eid"`
	Identity eidSection `xml:"identity"`
	Address  eidSection `xml:"address"`
}

type eidSection struct {
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []eidElement `xml:",any"`
}

type eidElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// dropped lists exported values never carried into the intake.
var dropped = map[string]struct{}{
	"photo": {},
}

// DecodeEID reads a card viewer export.
func DecodeEID(r io.Reader) (Identity, error) {
	var doc eidDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Identity{}, fmt.Errorf("decode eid export: %w", err)
	}

	attrs := make(map[string]string)
	collect := func(section eidSection) {
		for _, a := range section.Attrs {
			attrs[strings.ToLower(a.Name.Local)] = strings.TrimSpace(a.Value)
		}
		for _, c := range section.Children {
			attrs[strings.ToLower(c.XMLName.Local)] = strings.TrimSpace(c.Value)
		}
	}
	collect(doc.Identity)
	collect(doc.Address)
	for key := range dropped {
		delete(attrs, key)
	}

	id := Identity{
		NationalNumber:  attrs["nationalnumber"],
		Name:            attrs["name"],
		FirstName:       attrs["firstname"],
		DateOfBirth:     attrs["dateofbirth"],
		Gender:          attrs["gender"],
		StreetAndNumber: attrs["streetandnumber"],
		Zip:             attrs["zip"],
		Municipality:    attrs["municipality"],
		Attributes:      attrs,
	}
	if id.NationalNumber == "" {
		return Identity{}, fmt.Errorf("decode eid export: %w", ErrMissingNationalNumber)
	}
	return id, nil
}
