package notifications

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"health-connect/models"
)

// AppointmentPDF renders a one-page booking summary attached to the
// request-received mail.
func AppointmentPDF(appt *models.Appointment, doctor *models.Doctor, patient *models.Patient) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "Health Connect - Appointment Booking", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Appointment Summary", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Appointment ID", appt.AppointmentID, true)
	addDetail(pdf, "Doctor Name", doctor.Name, true)
	addDetail(pdf, "Specialty", doctor.Specialty, true)
	addDetail(pdf, "Hospital", doctor.Hospital, true)
	addDetail(pdf, "Patient Name", patient.Name, true)
	addDetail(pdf, "Date", appt.Date, true)
	addDetail(pdf, "Time Slot", appt.TimeSlot, true)
	addDetail(pdf, "Status", string(appt.Status), false)
	addDetail(pdf, "Reason", appt.Reason, false)
	addDetail(pdf, "Consultation Fee", fmt.Sprintf("%d", doctor.ConsultationFee), false)

	pdf.SetFont("Arial", "", 10)
	pdf.SetY(pdf.GetY() + 10)
	pdf.MultiCell(0, 5, "Thank you for booking with Health Connect. Your appointment will be confirmed shortly.", "", "L", false)

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated summary", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addDetail adds a detail line to the PDF
func addDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
