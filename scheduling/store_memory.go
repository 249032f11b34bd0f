package scheduling

import (
	"context"
	"sync"
	"time"

	"health-connect/models"
)

// MemoryStore is the in-memory AppointmentStore used by tests and
// database-less runs. A single mutex makes every operation linearizable,
// which is what the double-booking guard relies on.
type MemoryStore struct {
	mu      sync.Mutex
	catalog DoctorCatalog
	appts   []*models.Appointment // insertion order
	byID    map[string]*models.Appointment
	now     func() time.Time
}

func NewMemoryStore(catalog DoctorCatalog) *MemoryStore {
	return &MemoryStore{
		catalog: catalog,
		byID:    make(map[string]*models.Appointment),
		now:     time.Now,
	}
}

// WithClock overrides the store clock. Test hook.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Create(ctx context.Context, appt *models.Appointment) error {
	normalized, err := validateDate(appt.Date, s.now())
	if err != nil {
		return err
	}
	appt.Date = normalized

	if _, err := s.catalog.DoctorByID(ctx, appt.DoctorID); err != nil {
		return err
	}
	slots, err := s.catalog.SlotsFor(ctx, appt.DoctorID)
	if err != nil {
		return err
	}
	if !contains(slots, appt.TimeSlot) {
		return ErrInvalidSlot
	}
	if len(appt.Reason) > MaxReasonLength {
		return ErrReasonTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasConflict(appt.DoctorID, appt.Date, appt.TimeSlot, appt.AppointmentID) {
		return ErrSlotTaken
	}

	now := s.now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	copied := *appt
	s.appts = append(s.appts, &copied)
	s.byID[copied.AppointmentID] = &copied
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Status != nil && !appt.Status.CanTransitionTo(*patch.Status) {
		return nil, ErrInvalidTransition
	}
	if (patch.Date != nil || patch.TimeSlot != nil) && appt.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	if patch.Reason != nil && len(*patch.Reason) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}

	newDate := appt.Date
	newSlot := appt.TimeSlot
	if patch.Date != nil {
		normalized, err := validateDate(*patch.Date, s.now())
		if err != nil {
			return nil, err
		}
		newDate = normalized
	}
	if patch.TimeSlot != nil {
		newSlot = *patch.TimeSlot
	}

	if newDate != appt.Date || newSlot != appt.TimeSlot {
		valid, err := s.catalog.IsValidSlot(ctx, appt.DoctorID, newSlot)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, ErrInvalidSlot
		}
		if s.hasConflict(appt.DoctorID, newDate, newSlot, id) {
			return nil, ErrSlotTaken
		}
	}

	appt.Date = newDate
	appt.TimeSlot = newSlot
	if patch.Reason != nil {
		appt.Reason = *patch.Reason
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	appt.UpdatedAt = s.now()

	copied := *appt
	return &copied, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *appt
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, appt := range s.appts {
		if !matches(appt, filter) {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, appt := range s.appts {
		if appt.AppointmentID == id {
			s.appts = append(s.appts[:i], s.appts[i+1:]...)
			break
		}
	}
	return nil
}

// hasConflict reports a non-cancelled appointment occupying the same
// (doctor, date, time), excluding excludeID. Caller holds the mutex.
func (s *MemoryStore) hasConflict(doctorID, date, slot, excludeID string) bool {
	for _, appt := range s.appts {
		if appt.AppointmentID == excludeID || appt.Status == models.StatusCancelled {
			continue
		}
		if appt.DoctorID == doctorID && appt.Date == date && appt.TimeSlot == slot {
			return true
		}
	}
	return false
}

func matches(appt *models.Appointment, filter ListFilter) bool {
	if filter.DoctorID != "" && appt.DoctorID != filter.DoctorID {
		return false
	}
	if filter.PatientID != "" && appt.PatientID != filter.PatientID {
		return false
	}
	if filter.Status != "" && appt.Status != filter.Status {
		return false
	}
	if filter.DateFrom != "" && appt.Date < filter.DateFrom {
		return false
	}
	if filter.DateTo != "" && appt.Date > filter.DateTo {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
