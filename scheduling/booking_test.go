package scheduling

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-connect/models"
)

func testClock() time.Time {
	return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
}

func testCatalog() *MemoryCatalog {
	return NewMemoryCatalog([]models.Doctor{
		{
			DoctorID:        "1",
			Name:            "Dr. Vamshi Krishna Chary",
			Specialty:       "Cardiology",
			ConsultationFee: 1000,
			Slots: []models.DoctorSlot{
				{DoctorID: "1", Position: 0, Label: "10:00 AM"},
				{DoctorID: "1", Position: 1, Label: "2:00 PM"},
				{DoctorID: "1", Position: 2, Label: "4:00 PM"},
			},
		},
		{
			DoctorID:        "2",
			Name:            "Dr. Ashok Bathina",
			Specialty:       "Neurology",
			ConsultationFee: 1200,
			Slots: []models.DoctorSlot{
				{DoctorID: "2", Position: 0, Label: "11:00 AM"},
				{DoctorID: "2", Position: 1, Label: "3:00 PM"},
			},
		},
	})
}

func newTestService(t *testing.T) (*BookingService, *MemoryStore) {
	t.Helper()
	catalog := testCatalog()
	store := NewMemoryStore(catalog).WithClock(testClock)
	patients := NewMemoryPatients()
	err := patients.CreatePatient(context.Background(), &models.Patient{
		PatientID: "p1",
		Name:      "Patient One",
		Email:     "patient.one@example.com",
	})
	require.NoError(t, err)
	return NewBookingService(store, patients, NopNotifier{}), store
}

func TestBook_RoundTrip(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "chest pain")
	require.NoError(t, err)
	require.NotEmpty(t, appt.AppointmentID)
	assert.Equal(t, models.StatusPending, appt.Status)

	got, err := store.Get(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PatientID)
	assert.Equal(t, "1", got.DoctorID)
	assert.Equal(t, "2026-02-10", got.Date)
	assert.Equal(t, "10:00 AM", got.TimeSlot)
	assert.Equal(t, "chest pain", got.Reason)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestBook_LocaleDateNormalized(t *testing.T) {
	svc, _ := newTestService(t)

	appt, err := svc.Book(context.Background(), "p1", "1", "Feb 10, 2026", "10:00 AM", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", appt.Date)
}

func TestBook_InvalidSlot(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "p1", "2", "2026-02-10", "11:99 PM", "checkup")
	require.ErrorIs(t, err, ErrInvalidSlot)

	// no record may be created on failure
	appts, err := store.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestBook_SlotOfOtherDoctorRejected(t *testing.T) {
	svc, _ := newTestService(t)

	// "11:00 AM" belongs to doctor 2, not doctor 1
	_, err := svc.Book(context.Background(), "p1", "1", "2026-02-10", "11:00 AM", "")
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestBook_UnknownDoctor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), "p1", "99", "2026-02-10", "10:00 AM", "")
	require.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestBook_UnknownPatient(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), "ghost", "1", "2026-02-10", "10:00 AM", "")
	require.ErrorIs(t, err, ErrUnknownPatient)
}

func TestBook_PastDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), "p1", "1", "2026-01-31", "10:00 AM", "")
	require.ErrorIs(t, err, ErrPastDate)
}

func TestBook_SameDayAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), "p1", "1", "2026-02-01", "10:00 AM", "")
	require.NoError(t, err)
}

func TestBook_BadDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), "p1", "1", "tomorrow-ish", "10:00 AM", "")
	require.ErrorIs(t, err, ErrBadDate)
}

func TestBook_DoubleBookingRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "first")
	require.NoError(t, err)

	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "second")
	require.ErrorIs(t, err, ErrSlotTaken)

	// other dates and other slots stay bookable
	_, err = svc.Book(ctx, "p1", "1", "2026-02-11", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)
}

func TestBook_CancelledSlotReopens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, appt.AppointmentID)
	require.NoError(t, err)

	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
}

func TestLifecycle_PendingToCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)

	appt, err = svc.Confirm(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	appt, err = svc.Complete(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, appt.Status)

	// completed is terminal
	_, err = svc.Cancel(ctx, appt.AppointmentID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, appt.AppointmentID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, appt.AppointmentID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_OnlyFromConfirmed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	_, err = svc.Complete(ctx, appt.AppointmentID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	first, err := svc.Cancel(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, first.Status)

	second, err := svc.Cancel(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, second.Status)

	got, err := store.Get(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestReschedule_MovesDateAndSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, appt.AppointmentID)
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, appt.AppointmentID, "2026-02-12", "2:00 PM")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-12", moved.Date)
	assert.Equal(t, "2:00 PM", moved.TimeSlot)
	assert.Equal(t, models.StatusConfirmed, moved.Status, "reschedule must not change status")

	// the old slot is free again
	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
}

func TestReschedule_RevalidatesSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, appt.AppointmentID, "", "11:99 PM")
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestReschedule_OntoTakenSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "p1", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)
	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, appt.AppointmentID, "", "2:00 PM")
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestReschedule_CompletedUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, appt.AppointmentID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, appt.AppointmentID)
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, appt.AppointmentID, "2026-02-12", "2:00 PM")
	require.ErrorIs(t, err, ErrInvalidTransition)

	got, err := store.Get(ctx, appt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", got.Date)
	assert.Equal(t, "10:00 AM", got.TimeSlot)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestTransitions_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Confirm(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Cancel(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Reschedule(ctx, "nope", "2026-02-12", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentTransitions_SingleWinner(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
		require.NoError(t, err)
		_, err = svc.Confirm(ctx, appt.AppointmentID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		var completeErr, cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, completeErr = svc.Complete(ctx, appt.AppointmentID)
		}()
		go func() {
			defer wg.Done()
			_, cancelErr = svc.Cancel(ctx, appt.AppointmentID)
		}()
		wg.Wait()

		got, err := store.Get(ctx, appt.AppointmentID)
		require.NoError(t, err)
		switch {
		case completeErr == nil && cancelErr == nil:
			t.Fatalf("iteration %d: complete and cancel both succeeded, final status %s", i, got.Status)
		case completeErr == nil:
			require.Equal(t, models.StatusCompleted, got.Status)
			require.ErrorIs(t, cancelErr, ErrInvalidTransition)
		case cancelErr == nil:
			require.Equal(t, models.StatusCancelled, got.Status)
			require.ErrorIs(t, completeErr, ErrInvalidTransition)
		default:
			t.Fatalf("iteration %d: both transitions failed: %v / %v", i, completeErr, cancelErr)
		}

		require.NoError(t, store.Delete(ctx, appt.AppointmentID))
	}
}

func TestStoreUpdate_EnforcesTransitions(t *testing.T) {
	_, store := newTestService(t)
	ctx := context.Background()

	appt := &models.Appointment{
		AppointmentID: "a1",
		PatientID:     "p1",
		DoctorID:      "1",
		Date:          "2026-02-10",
		TimeSlot:      "10:00 AM",
		Status:        models.StatusPending,
	}
	require.NoError(t, store.Create(ctx, appt))

	// pending cannot jump straight to completed
	completed := models.StatusCompleted
	_, err := store.Update(ctx, "a1", Patch{Status: &completed})
	require.ErrorIs(t, err, ErrInvalidTransition)

	confirmed := models.StatusConfirmed
	_, err = store.Update(ctx, "a1", Patch{Status: &confirmed})
	require.NoError(t, err)
	_, err = store.Update(ctx, "a1", Patch{Status: &completed})
	require.NoError(t, err)

	// terminal records accept neither a status nor a date/time patch
	cancelled := models.StatusCancelled
	_, err = store.Update(ctx, "a1", Patch{Status: &cancelled})
	require.ErrorIs(t, err, ErrInvalidTransition)
	newSlot := "2:00 PM"
	_, err = store.Update(ctx, "a1", Patch{TimeSlot: &newSlot})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReasonLengthCapped(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	long := strings.Repeat("x", MaxReasonLength+1)
	_, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", long)
	require.ErrorIs(t, err, ErrReasonTooLong)

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", strings.Repeat("x", MaxReasonLength))
	require.NoError(t, err)

	_, err = store.Update(ctx, appt.AppointmentID, Patch{Reason: &long})
	require.ErrorIs(t, err, ErrReasonTooLong)
}

func TestPurge_RemovesRecord(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, appt.AppointmentID))

	_, err = store.Get(ctx, appt.AppointmentID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, appt.AppointmentID), ErrNotFound)
}
