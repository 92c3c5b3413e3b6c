package resident

import (
	"context"

	id "attesta/pkg/domain"
)

// Directory resolves subjects for document issuance and read-time address
// joins. Absence is reported with sentinel.ErrNotFound.
type Directory interface {
	FindResident(ctx context.Context, residentID id.ResidentID) (*Resident, error)
	FindResidence(ctx context.Context, residenceID id.ResidenceID) (*Residence, error)
	PutResident(ctx context.Context, r *Resident) error
	PutResidence(ctx context.Context, r *Residence) error
}
