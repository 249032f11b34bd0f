// Package seed loads the doctor catalog supplied at startup. The file is an
// external, read-only collaborator: the service never writes it back.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"health-connect/models"
)

// Doctor is the on-disk catalog entry shape.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Experience      int      `json:"experience"`
	Hospital        string   `json:"hospital"`
	Rating          float64  `json:"rating"`
	AvailableSlots  []string `json:"availableSlots"`
	ConsultationFee uint32   `json:"consultationFee"`
	Approved        bool     `json:"approved"`
	Bio             string   `json:"bio"`
}

// Load reads and validates a catalog file, preserving slot declaration order.
func Load(path string) ([]models.Doctor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []Doctor
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	doctors := make([]models.Doctor, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, errors.New("seed entry missing id or name")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate doctor id %q in seed", e.ID)
		}
		seen[e.ID] = true

		slots := make([]models.DoctorSlot, 0, len(e.AvailableSlots))
		for i, label := range e.AvailableSlots {
			slots = append(slots, models.DoctorSlot{DoctorID: e.ID, Position: i, Label: label})
		}
		doctors = append(doctors, models.Doctor{
			DoctorID:        e.ID,
			Name:            e.Name,
			Specialty:       e.Specialty,
			Experience:      e.Experience,
			Hospital:        e.Hospital,
			Rating:          e.Rating,
			ConsultationFee: e.ConsultationFee,
			Approved:        e.Approved,
			Bio:             e.Bio,
			Slots:           slots,
		})
	}
	return doctors, nil
}

// Apply inserts catalog entries that are not in the database yet. Existing
// doctors are left alone so admin-set approval flags survive restarts.
func Apply(db *gorm.DB, doctors []models.Doctor) error {
	for _, d := range doctors {
		var existing models.Doctor
		err := db.Where("doctor_id = ?", d.DoctorID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check doctor %s: %w", d.DoctorID, err)
		}
		if err := db.Create(&d).Error; err != nil {
			return fmt.Errorf("seed doctor %s: %w", d.DoctorID, err)
		}
	}
	return nil
}
