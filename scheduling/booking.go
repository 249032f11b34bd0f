package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"health-connect/models"
)

// Notifier is told about lifecycle events after they are committed.
// Implementations must not block the booking flow; failures are theirs to log.
type Notifier interface {
	BookingCreated(ctx context.Context, appt *models.Appointment)
	BookingConfirmed(ctx context.Context, appt *models.Appointment)
	BookingCancelled(ctx context.Context, appt *models.Appointment)
}

// NopNotifier drops every event. Used when SMTP is not configured and in tests.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *models.Appointment)   {}
func (NopNotifier) BookingConfirmed(context.Context, *models.Appointment) {}
func (NopNotifier) BookingCancelled(context.Context, *models.Appointment) {}

// BookingService is the operation surface patients, doctors and admins call.
// It sequences operations and notifications; record-level invariants (slot
// membership, date sanity, double-booking, status transitions) are enforced
// atomically by the AppointmentStore.
type BookingService struct {
	store    AppointmentStore
	patients PatientDirectory
	notifier Notifier
}

func NewBookingService(store AppointmentStore, patients PatientDirectory, notifier Notifier) *BookingService {
	return &BookingService{store: store, patients: patients, notifier: notifier}
}

// Book creates a new appointment in status pending. Bookings always start
// pending and need an explicit Confirm; there is no auto-confirm path.
func (s *BookingService) Book(ctx context.Context, patientID, doctorID, date, timeSlot, reason string) (*models.Appointment, error) {
	ok, err := s.patients.HasPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return nil, ErrUnknownPatient
	}

	appt := &models.Appointment{
		AppointmentID: uuid.New().String(),
		PatientID:     patientID,
		DoctorID:      doctorID,
		Date:          date,
		TimeSlot:      timeSlot,
		Reason:        reason,
		Status:        models.StatusPending,
	}
	if err := s.store.Create(ctx, appt); err != nil {
		return nil, err
	}

	log.Println("appointment booked:", appt.AppointmentID, "doctor", doctorID, appt.Date, appt.TimeSlot)
	go s.notifier.BookingCreated(context.WithoutCancel(ctx), appt)
	return appt, nil
}

// Reschedule moves an appointment to a new date and/or time. Slot legality,
// date sanity, the double-booking guard and the terminal-status check all
// run inside the store's critical section; status is left unchanged.
func (s *BookingService) Reschedule(ctx context.Context, id, newDate, newTimeSlot string) (*models.Appointment, error) {
	patch := Patch{}
	if newDate != "" {
		patch.Date = &newDate
	}
	if newTimeSlot != "" {
		patch.TimeSlot = &newTimeSlot
	}
	return s.store.Update(ctx, id, patch)
}

// Confirm moves pending -> confirmed.
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.transition(ctx, id, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), appt)
	return appt, nil
}

// Complete moves confirmed -> completed.
func (s *BookingService) Complete(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, models.StatusCompleted)
}

// Cancel moves pending or confirmed -> cancelled. Cancelling an already
// cancelled appointment is a no-op returning the record; cancelling a
// completed one fails.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	updated, err := s.transition(ctx, id, models.StatusCancelled)
	if errors.Is(err, ErrInvalidTransition) {
		appt, getErr := s.store.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if appt.Status == models.StatusCancelled {
			return appt, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	log.Println("appointment cancelled:", id)
	go s.notifier.BookingCancelled(context.WithoutCancel(ctx), updated)
	return updated, nil
}

// transition delegates legality to the store, which checks the current
// status against next inside its critical section. Racing transitions on
// one appointment therefore cannot both succeed.
func (s *BookingService) transition(ctx context.Context, id string, next models.BookingStatus) (*models.Appointment, error) {
	return s.store.Update(ctx, id, Patch{Status: &next})
}
