package resident

import (
	"context"
	"sync"

	id "attesta/pkg/domain"
	"attesta/pkg/platform/sentinel"
)

// InMemoryDirectory backs unit tests and development wiring.
type InMemoryDirectory struct {
	mu         sync.RWMutex
	residents  map[id.ResidentID]Resident
	residences map[id.ResidenceID]Residence
}

func NewInMemory() *InMemoryDirectory {
	return &InMemoryDirectory{
		residents:  make(map[id.ResidentID]Resident),
		residences: make(map[id.ResidenceID]Residence),
	}
}

func (d *InMemoryDirectory) FindResident(_ context.Context, residentID id.ResidentID) (*Resident, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.residents[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (d *InMemoryDirectory) FindResidence(_ context.Context, residenceID id.ResidenceID) (*Residence, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.residences[residenceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (d *InMemoryDirectory) PutResident(_ context.Context, r *Resident) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.residents[r.ID] = *r
	return nil
}

func (d *InMemoryDirectory) PutResidence(_ context.Context, r *Residence) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.residences[r.ID] = *r
	return nil
}
