package scheduling

import (
	"context"

	"health-connect/models"
)

// DoctorCatalog answers questions about the seeded doctor catalog. Doctors
// are immutable during a session except for the Approved flag.
type DoctorCatalog interface {
	Doctors(ctx context.Context) ([]models.Doctor, error)
	DoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	DoctorsBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error)

	// SlotsFor returns the doctor's offered time labels in declaration
	// order. Unknown doctor yields an empty slice, not an error; callers
	// must handle emptiness.
	SlotsFor(ctx context.Context, doctorID string) ([]string, error)

	// IsValidSlot is true iff the doctor exists and slot is one of its
	// declared labels.
	IsValidSlot(ctx context.Context, doctorID, slot string) (bool, error)

	// SetApproved flips the admin-mutated approval flag.
	SetApproved(ctx context.Context, doctorID string, approved bool) (*models.Doctor, error)
}

// PatientDirectory is the patient registry the booking flow validates against.
type PatientDirectory interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	PatientByID(ctx context.Context, id string) (*models.Patient, error)
	HasPatient(ctx context.Context, id string) (bool, error)
}
