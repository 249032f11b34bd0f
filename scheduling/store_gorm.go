package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"health-connect/models"
)

// GormStore is the durable AppointmentStore. Every mutating call runs inside
// a transaction that first locks the doctor row FOR UPDATE, so all mutations
// touching one doctor serialize and the conflict checks below stay valid
// under READ COMMITTED.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) Create(ctx context.Context, appt *models.Appointment) error {
	normalized, err := validateDate(appt.Date, s.now())
	if err != nil {
		return err
	}
	appt.Date = normalized

	if len(appt.Reason) > MaxReasonLength {
		return ErrReasonTooLong
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDoctor(tx, appt.DoctorID); err != nil {
			return err
		}

		var slotCount int64
		if err := tx.Model(&models.DoctorSlot{}).
			Where("doctor_id = ? AND label = ?", appt.DoctorID, appt.TimeSlot).
			Count(&slotCount).Error; err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if slotCount == 0 {
			return ErrInvalidSlot
		}

		// The same doctor, date and time may carry at most one
		// non-cancelled appointment.
		var clash int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ?",
				appt.DoctorID, appt.Date, appt.TimeSlot, models.StatusCancelled).
			Count(&clash).Error; err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if clash > 0 {
			return ErrSlotTaken
		}

		if err := tx.Create(appt).Error; err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	})
}

func (s *GormStore) Update(ctx context.Context, id string, patch Patch) (*models.Appointment, error) {
	var updated models.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.Where("appointment_id = ?", id).First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get appointment: %w", err)
		}
		if err := lockDoctor(tx, appt.DoctorID); err != nil {
			return err
		}
		if patch.Status != nil && !appt.Status.CanTransitionTo(*patch.Status) {
			return ErrInvalidTransition
		}
		if (patch.Date != nil || patch.TimeSlot != nil) && appt.Status.Terminal() {
			return ErrInvalidTransition
		}
		if patch.Reason != nil && len(*patch.Reason) > MaxReasonLength {
			return ErrReasonTooLong
		}

		newDate := appt.Date
		newSlot := appt.TimeSlot
		if patch.Date != nil {
			normalized, err := validateDate(*patch.Date, s.now())
			if err != nil {
				return err
			}
			newDate = normalized
		}
		if patch.TimeSlot != nil {
			newSlot = *patch.TimeSlot
		}

		if newDate != appt.Date || newSlot != appt.TimeSlot {
			var slotCount int64
			if err := tx.Model(&models.DoctorSlot{}).
				Where("doctor_id = ? AND label = ?", appt.DoctorID, newSlot).
				Count(&slotCount).Error; err != nil {
				return fmt.Errorf("check slot: %w", err)
			}
			if slotCount == 0 {
				return ErrInvalidSlot
			}

			var clash int64
			if err := tx.Model(&models.Appointment{}).
				Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ? AND appointment_id <> ?",
					appt.DoctorID, newDate, newSlot, models.StatusCancelled, id).
				Count(&clash).Error; err != nil {
				return fmt.Errorf("check conflicts: %w", err)
			}
			if clash > 0 {
				return ErrSlotTaken
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

		if err := tx.Save(&appt).Error; err != nil {
			return fmt.Errorf("save appointment: %w", err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// lockDoctor takes a FOR UPDATE lock on the doctor row. Concurrent
// transactions for the same doctor block here until the holder commits.
func lockDoctor(tx *gorm.DB, doctorID string) error {
	var doctor models.Doctor
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ?", doctorID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownDoctor
		}
		return fmt.Errorf("lock doctor: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).Where("appointment_id = ?", id).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &appt, nil
}

func (s *GormStore) List(ctx context.Context, filter ListFilter) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.DoctorID != "" {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		q = q.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		q = q.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("date <= ?", filter.DateTo)
	}

	var appts []models.Appointment
	if err := q.Order("created_at ASC").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("appointment_id = ?", id).Delete(&models.Appointment{})
	if result.Error != nil {
		return fmt.Errorf("delete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
