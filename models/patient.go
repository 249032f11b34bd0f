package models

type Patient struct {
	PatientID string `json:"id" gorm:"primaryKey;column:patient_id"`
	Name      string `json:"name" validate:"required"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address"`
}
