package models

import "time"

// BookingStatus is the appointment lifecycle state. Transitions are monotonic
// along pending -> confirmed -> completed; cancelled is reachable from pending
// or confirmed only. completed and cancelled are terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status machine allows s -> next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

type Appointment struct {
	AppointmentID string        `json:"id" gorm:"primaryKey;column:appointment_id"`
	PatientID     string        `json:"patientId" gorm:"not null;index"`
	DoctorID      string        `json:"doctorId" gorm:"not null;index"`
	Date          string        `json:"date" gorm:"not null"` // normalized to YYYY-MM-DD
	TimeSlot      string        `json:"time" gorm:"not null"`
	Reason        string        `json:"reason"`
	Status        BookingStatus `json:"status" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}
