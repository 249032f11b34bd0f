package models

// DoctorSlot is one bookable time label offered by a doctor (e.g. "10:00 AM"),
// valid for any calendar date while it stays in the catalog. Position preserves
// declaration order.
type DoctorSlot struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	DoctorID string `json:"doctor_id" gorm:"index;not null"`
	Position int    `json:"-" gorm:"not null"`
	Label    string `json:"label" gorm:"not null"`
}
