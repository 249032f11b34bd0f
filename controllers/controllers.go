package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"health-connect/scheduling"
)

var validate = validator.New()

// Controller wires the gin handlers to the scheduling core. Handlers never
// touch the backing collection directly; all mutation goes through the
// booking service and the store.
type Controller struct {
	Booking     *scheduling.BookingService
	Store       scheduling.AppointmentStore
	Catalog     scheduling.DoctorCatalog
	Patients    scheduling.PatientDirectory
	Projections *scheduling.ViewProjections
	Cache       *scheduling.SlotCache
}

func New(
	booking *scheduling.BookingService,
	store scheduling.AppointmentStore,
	catalog scheduling.DoctorCatalog,
	patients scheduling.PatientDirectory,
	projections *scheduling.ViewProjections,
	cache *scheduling.SlotCache,
) *Controller {
	return &Controller{
		Booking:     booking,
		Store:       store,
		Catalog:     catalog,
		Patients:    patients,
		Projections: projections,
		Cache:       cache,
	}
}

// respondError maps scheduling sentinels onto HTTP statuses: 404 for missing
// records, 409 for slot and transition conflicts, 400 for bad dates.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scheduling.ErrNotFound),
		errors.Is(err, scheduling.ErrUnknownDoctor),
		errors.Is(err, scheduling.ErrUnknownPatient):
		status = http.StatusNotFound
	case errors.Is(err, scheduling.ErrInvalidSlot),
		errors.Is(err, scheduling.ErrSlotTaken),
		errors.Is(err, scheduling.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, scheduling.ErrBadDate),
		errors.Is(err, scheduling.ErrPastDate),
		errors.Is(err, scheduling.ErrReasonTooLong):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"Status": "Failed",
		"error":  err.Error(),
	})
}
