package scheduling

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"health-connect/models"
)

// GormCatalog serves the doctor catalog from the doctors/doctor_slots tables.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func orderedSlots(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (c *GormCatalog) Doctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := c.db.WithContext(ctx).Preload("Slots", orderedSlots).Order("doctor_id").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (c *GormCatalog) DoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := c.db.WithContext(ctx).Preload("Slots", orderedSlots).Where("doctor_id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownDoctor
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return &doctor, nil
}

func (c *GormCatalog) DoctorsBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := c.db.WithContext(ctx).Preload("Slots", orderedSlots).
		Where("specialty = ?", specialty).Order("doctor_id").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("list doctors by specialty: %w", err)
	}
	return doctors, nil
}

func (c *GormCatalog) SlotsFor(ctx context.Context, doctorID string) ([]string, error) {
	var slots []models.DoctorSlot
	err := c.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("position ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	return labels, nil
}

func (c *GormCatalog) IsValidSlot(ctx context.Context, doctorID, slot string) (bool, error) {
	var doctorCount int64
	if err := c.db.WithContext(ctx).Model(&models.Doctor{}).Where("doctor_id = ?", doctorID).Count(&doctorCount).Error; err != nil {
		return false, fmt.Errorf("check doctor: %w", err)
	}
	if doctorCount == 0 {
		return false, nil
	}

	var slotCount int64
	err := c.db.WithContext(ctx).Model(&models.DoctorSlot{}).
		Where("doctor_id = ? AND label = ?", doctorID, slot).Count(&slotCount).Error
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return slotCount > 0, nil
}

func (c *GormCatalog) SetApproved(ctx context.Context, doctorID string, approved bool) (*models.Doctor, error) {
	var doctor models.Doctor
	err := c.db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownDoctor
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}

	doctor.Approved = approved
	if err := c.db.WithContext(ctx).Model(&doctor).Update("approved", approved).Error; err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}
	return &doctor, nil
}

// GormPatients keeps the patient registry in the patients table.
type GormPatients struct {
	db *gorm.DB
}

func NewGormPatients(db *gorm.DB) *GormPatients {
	return &GormPatients{db: db}
}

func (p *GormPatients) CreatePatient(ctx context.Context, patient *models.Patient) error {
	if err := p.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (p *GormPatients) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	err := p.db.WithContext(ctx).Where("patient_id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownPatient
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &patient, nil
}

func (p *GormPatients) HasPatient(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).Model(&models.Patient{}).Where("patient_id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check patient: %w", err)
	}
	return count > 0, nil
}
