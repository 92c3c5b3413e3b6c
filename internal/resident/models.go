// Package resident is the subject directory the document views join against.
// It carries just enough of the village register to resolve a resident's
// identity and current address deterministically.
package resident

import (
	id "attesta/pkg/domain"
)

// Resident is a person in the village register.
type Resident struct {
	ID          id.ResidentID  `json:"id"`
	Name        string         `json:"name"`
	NationalID  string         `json:"national_id"`
	ResidenceID id.ResidenceID `json:"residence_id"`
}

// Residence is a registered address.
type Residence struct {
	ID          id.ResidenceID `json:"id"`
	AddressLine string         `json:"address_line"`
	Village     string         `json:"village"`
}
