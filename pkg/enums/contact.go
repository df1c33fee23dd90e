package enums

import "fmt"

// ContactType classifies where a contact sits in the sales lifecycle.
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeLead     ContactType = "lead"
	ContactTypeProspect ContactType = "prospect"
	ContactTypeVendor   ContactType = "vendor"
)

var validContactTypes = []ContactType{
	ContactTypeCustomer,
	ContactTypeLead,
	ContactTypeProspect,
	ContactTypeVendor,
}

// String implements fmt.Stringer.
func (c ContactType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContactType.
func (c ContactType) IsValid() bool {
	for _, candidate := range validContactTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactType converts raw input into a ContactType.
func ParseContactType(value string) (ContactType, error) {
	for _, candidate := range validContactTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact type %q", value)
}
