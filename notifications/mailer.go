package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"health-connect/models"
	"health-connect/scheduling"
)

// Mailer emails patients about appointment lifecycle events. It satisfies
// scheduling.Notifier; send failures are logged, never propagated into the
// booking flow.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
	patients scheduling.PatientDirectory
	catalog  scheduling.DoctorCatalog
}

func NewMailer(host string, port int, from, password string, patients scheduling.PatientDirectory, catalog scheduling.DoctorCatalog) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		patients: patients,
		catalog:  catalog,
	}
}

// MailerFromEnv builds a Mailer from SMTP_HOST/SMTP_PORT/EMAIL/EMAIL_PASSWORD.
// Returns nil when EMAIL is unset so callers can fall back to the NopNotifier.
func MailerFromEnv(patients scheduling.PatientDirectory, catalog scheduling.DoctorCatalog) *Mailer {
	from := os.Getenv("EMAIL")
	if from == "" {
		return nil
	}
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return NewMailer(host, port, from, os.Getenv("EMAIL_PASSWORD"), patients, catalog)
}

func (m *Mailer) BookingCreated(ctx context.Context, appt *models.Appointment) {
	patient, doctor, ok := m.lookup(ctx, appt)
	if !ok {
		return
	}

	summary, err := AppointmentPDF(appt, doctor, patient)
	if err != nil {
		log.Println("booking summary pdf failed:", err)
		summary = nil
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment request with %s (%s) on %s at %s has been received and is awaiting confirmation.\n",
		patient.Name, doctor.Name, doctor.Specialty, appt.Date, appt.TimeSlot,
	)
	if err := m.send(patient.Email, "Appointment request received", body, "appointment.pdf", summary); err != nil {
		log.Println("booking created mail failed:", err)
	}
}

func (m *Mailer) BookingConfirmed(ctx context.Context, appt *models.Appointment) {
	patient, doctor, ok := m.lookup(ctx, appt)
	if !ok {
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s on %s at %s is confirmed.\n",
		patient.Name, doctor.Name, appt.Date, appt.TimeSlot,
	)
	if err := m.send(patient.Email, "Appointment confirmed", body, "", nil); err != nil {
		log.Println("booking confirmed mail failed:", err)
	}
}

func (m *Mailer) BookingCancelled(ctx context.Context, appt *models.Appointment) {
	patient, doctor, ok := m.lookup(ctx, appt)
	if !ok {
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s on %s at %s has been cancelled.\n",
		patient.Name, doctor.Name, appt.Date, appt.TimeSlot,
	)
	if err := m.send(patient.Email, "Appointment cancelled", body, "", nil); err != nil {
		log.Println("booking cancelled mail failed:", err)
	}
}

func (m *Mailer) lookup(ctx context.Context, appt *models.Appointment) (*models.Patient, *models.Doctor, bool) {
	patient, err := m.patients.PatientByID(ctx, appt.PatientID)
	if err != nil {
		log.Println("notification lookup patient failed:", err)
		return nil, nil, false
	}
	doctor, err := m.catalog.DoctorByID(ctx, appt.DoctorID)
	if err != nil {
		log.Println("notification lookup doctor failed:", err)
		return nil, nil, false
	}
	return patient, doctor, true
}
