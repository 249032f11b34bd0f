package scheduling

import (
	"context"
	"strings"
	"time"

	"health-connect/models"
)

// MaxReasonLength caps the free-form booking reason. The text is opaque,
// never parsed.
const MaxReasonLength = 500

// ListFilter narrows AppointmentStore.List. Zero fields are ignored.
type ListFilter struct {
	DoctorID  string
	PatientID string
	Status    models.BookingStatus
	DateFrom  string // inclusive, YYYY-MM-DD
	DateTo    string // inclusive, YYYY-MM-DD
}

// Patch is a partial update applied by AppointmentStore.Update. Nil fields
// are left untouched.
type Patch struct {
	Date     *string
	TimeSlot *string
	Reason   *string
	Status   *models.BookingStatus
}

// AppointmentStore is the single source of truth for appointment records and
// the only component allowed to mutate the backing collection. Mutating calls
// on one store instance are linearizable: the GORM implementation wraps the
// read-then-write in a transaction, the in-memory one holds a mutex. That is
// what makes the double-booking guard in Create and Update hold.
type AppointmentStore interface {
	// Create validates doctor existence, slot membership, date sanity and
	// the (doctor, date, time) uniqueness among non-cancelled records, then
	// inserts. The appointment's Date is normalized in place.
	Create(ctx context.Context, appt *models.Appointment) error

	// Update applies a partial patch. When the patch touches Date or
	// TimeSlot the same validations as Create run again, excluding the
	// record itself from the conflict check; terminal appointments cannot
	// move. A Status in the patch must be a legal transition from the
	// current status, checked against the record inside the same critical
	// section so concurrent transitions cannot both pass.
	Update(ctx context.Context, id string, patch Patch) (*models.Appointment, error)

	Get(ctx context.Context, id string) (*models.Appointment, error)

	// List returns matching appointments in insertion order.
	List(ctx context.Context, filter ListFilter) ([]models.Appointment, error)

	// Delete physically removes a record. Reserved for the explicit admin
	// purge; regular cancellation is a status change.
	Delete(ctx context.Context, id string) error
}

const dateLayout = "2006-01-02"

// Locale-style dates like "Feb 10, 2026" still show up in old client
// payloads, so both layouts are accepted on input.
var acceptedDateLayouts = []string{dateLayout, "Jan 2, 2006", "Jan 02, 2006"}

// NormalizeDate parses a calendar date and renders it as YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(dateLayout), nil
		}
	}
	return "", ErrBadDate
}

// validateDate normalizes s and rejects days strictly before today.
func validateDate(s string, now time.Time) (string, error) {
	normalized, err := NormalizeDate(s)
	if err != nil {
		return "", err
	}
	day, _ := time.Parse(dateLayout, normalized)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return "", ErrPastDate
	}
	return normalized, nil
}
