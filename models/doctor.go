package models

// Doctor is part of the catalog seeded at startup. Everything except the
// Approved flag is immutable for the life of the process.
type Doctor struct {
	DoctorID        string       `json:"id" gorm:"primaryKey;column:doctor_id"`
	Name            string       `json:"name" gorm:"not null"`
	Specialty       string       `json:"specialty" gorm:"not null"`
	Experience      int          `json:"experience"`
	Hospital        string       `json:"hospital"`
	Rating          float64      `json:"rating"`
	ConsultationFee uint32       `json:"consultationFee"`
	Approved        bool         `json:"approved"`
	Bio             string       `json:"bio"`
	Slots           []DoctorSlot `json:"-" gorm:"foreignKey:DoctorID;references:DoctorID"`
}

// SlotLabels returns the doctor's offered time slots in declaration order.
func (d Doctor) SlotLabels() []string {
	labels := make([]string, 0, len(d.Slots))
	for _, s := range d.Slots {
		labels = append(labels, s.Label)
	}
	return labels
}
