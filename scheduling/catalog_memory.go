package scheduling

import (
	"context"
	"sync"

	"health-connect/models"
)

// MemoryCatalog is an in-memory DoctorCatalog. It backs tests and any
// deployment that runs straight off the seed file without a database.
type MemoryCatalog struct {
	mu      sync.RWMutex
	order   []string
	doctors map[string]*models.Doctor
}

func NewMemoryCatalog(doctors []models.Doctor) *MemoryCatalog {
	c := &MemoryCatalog{doctors: make(map[string]*models.Doctor, len(doctors))}
	for i := range doctors {
		d := doctors[i]
		c.order = append(c.order, d.DoctorID)
		c.doctors[d.DoctorID] = &d
	}
	return c
}

func (c *MemoryCatalog) Doctors(ctx context.Context) ([]models.Doctor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Doctor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.doctors[id])
	}
	return out, nil
}

func (c *MemoryCatalog) DoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.doctors[id]
	if !ok {
		return nil, ErrUnknownDoctor
	}
	copied := *d
	return &copied, nil
}

func (c *MemoryCatalog) DoctorsBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Doctor
	for _, id := range c.order {
		if c.doctors[id].Specialty == specialty {
			out = append(out, *c.doctors[id])
		}
	}
	return out, nil
}

func (c *MemoryCatalog) SlotsFor(ctx context.Context, doctorID string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.doctors[doctorID]
	if !ok {
		return []string{}, nil
	}
	return d.SlotLabels(), nil
}

func (c *MemoryCatalog) IsValidSlot(ctx context.Context, doctorID, slot string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.doctors[doctorID]
	if !ok {
		return false, nil
	}
	for _, s := range d.Slots {
		if s.Label == slot {
			return true, nil
		}
	}
	return false, nil
}

func (c *MemoryCatalog) SetApproved(ctx context.Context, doctorID string, approved bool) (*models.Doctor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.doctors[doctorID]
	if !ok {
		return nil, ErrUnknownDoctor
	}
	d.Approved = approved
	copied := *d
	return &copied, nil
}

// MemoryPatients is the in-memory PatientDirectory counterpart.
type MemoryPatients struct {
	mu       sync.RWMutex
	patients map[string]*models.Patient
}

func NewMemoryPatients() *MemoryPatients {
	return &MemoryPatients{patients: make(map[string]*models.Patient)}
}

func (p *MemoryPatients) CreatePatient(ctx context.Context, patient *models.Patient) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := *patient
	p.patients[patient.PatientID] = &copied
	return nil
}

func (p *MemoryPatients) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	patient, ok := p.patients[id]
	if !ok {
		return nil, ErrUnknownPatient
	}
	copied := *patient
	return &copied, nil
}

func (p *MemoryPatients) HasPatient(ctx context.Context, id string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.patients[id]
	return ok, nil
}
