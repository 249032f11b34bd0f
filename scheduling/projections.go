package scheduling

import (
	"context"
	"sort"
	"time"

	"health-connect/models"
)

// ViewProjections are pure read-only aggregations over the AppointmentStore
// consumed by the dashboards. Nothing here is cached or a source of truth;
// every call recomputes from store state.
type ViewProjections struct {
	store   AppointmentStore
	catalog DoctorCatalog
	now     func() time.Time
}

func NewViewProjections(store AppointmentStore, catalog DoctorCatalog) *ViewProjections {
	return &ViewProjections{store: store, catalog: catalog, now: time.Now}
}

// WithClock overrides the projection clock. Test hook.
func (p *ViewProjections) WithClock(now func() time.Time) *ViewProjections {
	p.now = now
	return p
}

// ScheduleForDoctor returns the doctor's appointments in an optional
// inclusive date range, sorted by (date, clock time of the slot label).
func (p *ViewProjections) ScheduleForDoctor(ctx context.Context, doctorID, from, to string) ([]models.Appointment, error) {
	filter := ListFilter{DoctorID: doctorID}
	var err error
	if from != "" {
		if filter.DateFrom, err = NormalizeDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if filter.DateTo, err = NormalizeDate(to); err != nil {
			return nil, err
		}
	}

	appts, err := p.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return slotClock(appts[i].TimeSlot) < slotClock(appts[j].TimeSlot)
	})
	return appts, nil
}

// HistoryForPatient returns the patient's appointments in insertion order.
func (p *ViewProjections) HistoryForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return p.store.List(ctx, ListFilter{PatientID: patientID})
}

// CountsByStatus tallies matching appointments per status. All four statuses
// are present in the result, zero-valued when empty.
func (p *ViewProjections) CountsByStatus(ctx context.Context, filter ListFilter) (map[models.BookingStatus]int, error) {
	appts, err := p.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts := map[models.BookingStatus]int{
		models.StatusPending:   0,
		models.StatusConfirmed: 0,
		models.StatusCompleted: 0,
		models.StatusCancelled: 0,
	}
	for _, a := range appts {
		counts[a.Status]++
	}
	return counts, nil
}

// DoctorBookings is one row of the doctor-wise admin report. Revenue counts
// completed consultations at the doctor's fee.
type DoctorBookings struct {
	DoctorID  string  `json:"doctor_id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Total     int     `json:"booking_count"`
	Completed int     `json:"completed_count"`
	Revenue   float64 `json:"total_revenue"`
}

func (p *ViewProjections) BookingsPerDoctor(ctx context.Context) ([]DoctorBookings, error) {
	doctors, err := p.catalog.Doctors(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := p.store.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	byDoctor := make(map[string]*DoctorBookings, len(doctors))
	rows := make([]DoctorBookings, len(doctors))
	for i, d := range doctors {
		rows[i] = DoctorBookings{DoctorID: d.DoctorID, Name: d.Name, Specialty: d.Specialty}
		byDoctor[d.DoctorID] = &rows[i]
	}
	for _, a := range appts {
		row, ok := byDoctor[a.DoctorID]
		if !ok {
			continue
		}
		row.Total++
		if a.Status == models.StatusCompleted {
			row.Completed++
		}
	}
	for i, d := range doctors {
		rows[i].Revenue = float64(rows[i].Completed) * float64(d.ConsultationFee)
	}
	return rows, nil
}

// SpecialtyBookings is one row of the department-wise admin report.
type SpecialtyBookings struct {
	Specialty string  `json:"specialty"`
	Total     int     `json:"booking_count"`
	Completed int     `json:"completed_count"`
	Revenue   float64 `json:"total_revenue"`
}

func (p *ViewProjections) BookingsPerSpecialty(ctx context.Context) ([]SpecialtyBookings, error) {
	perDoctor, err := p.BookingsPerDoctor(ctx)
	if err != nil {
		return nil, err
	}

	bySpecialty := make(map[string]*SpecialtyBookings)
	var order []string
	for _, row := range perDoctor {
		agg, ok := bySpecialty[row.Specialty]
		if !ok {
			agg = &SpecialtyBookings{Specialty: row.Specialty}
			bySpecialty[row.Specialty] = agg
			order = append(order, row.Specialty)
		}
		agg.Total += row.Total
		agg.Completed += row.Completed
		agg.Revenue += row.Revenue
	}

	out := make([]SpecialtyBookings, 0, len(order))
	for _, s := range order {
		out = append(out, *bySpecialty[s])
	}
	return out, nil
}

// AvailableSlots returns the doctor's catalog slots not yet taken by a
// non-cancelled appointment on the given date, in declaration order.
func (p *ViewProjections) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if _, err := p.catalog.DoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}
	normalized, err := validateDate(date, p.now())
	if err != nil {
		return nil, err
	}

	slots, err := p.catalog.SlotsFor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	appts, err := p.store.List(ctx, ListFilter{DoctorID: doctorID, DateFrom: normalized, DateTo: normalized})
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(appts))
	for _, a := range appts {
		if a.Status != models.StatusCancelled {
			taken[a.TimeSlot] = true
		}
	}

	open := make([]string, 0, len(slots))
	for _, s := range slots {
		if !taken[s] {
			open = append(open, s)
		}
	}
	return open, nil
}

// slotClock maps a slot label like "10:00 AM" onto minutes since midnight
// for sorting. Labels that do not parse sort last.
func slotClock(label string) int {
	for _, layout := range []string{"3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Hour()*60 + t.Minute()
		}
	}
	return 24 * 60
}
