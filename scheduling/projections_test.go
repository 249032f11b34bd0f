package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-connect/models"
)

func newTestProjections(t *testing.T) (*ViewProjections, *BookingService) {
	t.Helper()
	catalog := testCatalog()
	store := NewMemoryStore(catalog).WithClock(testClock)
	patients := NewMemoryPatients()
	for _, id := range []string{"p1", "p2"} {
		err := patients.CreatePatient(context.Background(), &models.Patient{PatientID: id, Name: "Patient " + id})
		require.NoError(t, err)
	}
	svc := NewBookingService(store, patients, NopNotifier{})
	return NewViewProjections(store, catalog).WithClock(testClock), svc
}

func TestScheduleForDoctor_SortedByDateAndSlot(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	// booked out of calendar order
	_, err := svc.Book(ctx, "p1", "1", "2026-02-11", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "4:00 PM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p2", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p2", "2", "2026-02-10", "11:00 AM", "")
	require.NoError(t, err)

	appts, err := proj.ScheduleForDoctor(ctx, "1", "", "")
	require.NoError(t, err)
	require.Len(t, appts, 3)
	assert.Equal(t, "10:00 AM", appts[0].TimeSlot)
	assert.Equal(t, "2026-02-10", appts[0].Date)
	assert.Equal(t, "4:00 PM", appts[1].TimeSlot)
	assert.Equal(t, "2026-02-11", appts[2].Date)
}

func TestScheduleForDoctor_DateRange(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p1", "1", "2026-02-12", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p1", "1", "2026-02-15", "10:00 AM", "")
	require.NoError(t, err)

	appts, err := proj.ScheduleForDoctor(ctx, "1", "2026-02-11", "2026-02-14")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "2026-02-12", appts[0].Date)

	_, err = proj.ScheduleForDoctor(ctx, "1", "not-a-date", "")
	require.ErrorIs(t, err, ErrBadDate)
}

func TestHistoryForPatient(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	first, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p2", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)
	second, err := svc.Book(ctx, "p1", "2", "2026-02-11", "11:00 AM", "")
	require.NoError(t, err)

	history, err := proj.HistoryForPatient(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.AppointmentID, history[0].AppointmentID)
	assert.Equal(t, second.AppointmentID, history[1].AppointmentID)
}

func TestCountsByStatus(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	a, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	b, err := svc.Book(ctx, "p1", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p2", "1", "2026-02-10", "4:00 PM", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, a.AppointmentID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, b.AppointmentID)
	require.NoError(t, err)

	counts, err := proj.CountsByStatus(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.StatusPending])
	assert.Equal(t, 0, counts[models.StatusConfirmed])
	assert.Equal(t, 1, counts[models.StatusCompleted])
	assert.Equal(t, 1, counts[models.StatusCancelled])
}

func TestBookingsPerDoctor_RevenueCountsCompletedOnly(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	a, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p1", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, a.AppointmentID)
	require.NoError(t, err)

	rows, err := proj.BookingsPerDoctor(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0].DoctorID)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].Completed)
	assert.Equal(t, float64(1000), rows[0].Revenue)

	assert.Equal(t, "2", rows[1].DoctorID)
	assert.Equal(t, 0, rows[1].Total)
	assert.Equal(t, float64(0), rows[1].Revenue)
}

func TestBookingsPerSpecialty(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "p1", "1", "2026-02-10", "10:00 AM", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "p2", "2", "2026-02-10", "11:00 AM", "")
	require.NoError(t, err)

	rows, err := proj.BookingsPerSpecialty(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cardiology", rows[0].Specialty)
	assert.Equal(t, 1, rows[0].Total)
	assert.Equal(t, "Neurology", rows[1].Specialty)
	assert.Equal(t, 1, rows[1].Total)
}

func TestAvailableSlots(t *testing.T) {
	proj, svc := newTestProjections(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, "p1", "1", "2026-02-10", "2:00 PM", "")
	require.NoError(t, err)

	open, err := proj.AvailableSlots(ctx, "1", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "4:00 PM"}, open)

	// another day is untouched
	open, err = proj.AvailableSlots(ctx, "1", "2026-02-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "2:00 PM", "4:00 PM"}, open)

	// cancelling frees the slot
	_, err = svc.Cancel(ctx, appt.AppointmentID)
	require.NoError(t, err)
	open, err = proj.AvailableSlots(ctx, "1", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "2:00 PM", "4:00 PM"}, open)
}

func TestAvailableSlots_Errors(t *testing.T) {
	proj, _ := newTestProjections(t)
	ctx := context.Background()

	_, err := proj.AvailableSlots(ctx, "99", "2026-02-10")
	require.ErrorIs(t, err, ErrUnknownDoctor)

	_, err = proj.AvailableSlots(ctx, "1", "2026-01-15")
	require.ErrorIs(t, err, ErrPastDate)

	_, err = proj.AvailableSlots(ctx, "1", "someday")
	require.ErrorIs(t, err, ErrBadDate)
}

func TestSlotClockOrdering(t *testing.T) {
	assert.Less(t, slotClock("9:00 AM"), slotClock("1:00 PM"))
	assert.Less(t, slotClock("10:00 AM"), slotClock("10:30 AM"))
	assert.Less(t, slotClock("15:04"), slotClock("4:00 PM"))
	assert.Equal(t, 24*60, slotClock("noonish"))
}
