package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-connect/models"
	"health-connect/scheduling"
)

// BookingRequest mirrors the persisted appointment record shape.
type BookingRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	DoctorID  string `json:"doctorId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Reason    string `json:"reason" validate:"max=500"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// BookAppointment creates a new pending appointment for a patient.
func (ctl *Controller) BookAppointment(c *gin.Context) {
	var req BookingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"Message": "Please fill all the mandatory fields",
			"error":   err.Error(),
		})
		return
	}

	appt, err := ctl.Booking.Book(c.Request.Context(), req.PatientID, req.DoctorID, req.Date, req.Time, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Cache.Invalidate(c.Request.Context(), appt.DoctorID, appt.Date)
	c.JSON(http.StatusCreated, gin.H{
		"Status":  "Success",
		"Message": "Appointment booked successfully",
		"Data":    appt,
	})
}

// GetAppointment fetches one appointment by id.
func (ctl *Controller) GetAppointment(c *gin.Context) {
	appt, err := ctl.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"Data":   appt,
	})
}

// ConfirmAppointment moves a pending appointment to confirmed.
func (ctl *Controller) ConfirmAppointment(c *gin.Context) {
	appt, err := ctl.Booking.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment confirmed",
		"Data":    appt,
	})
}

// CompleteAppointment moves a confirmed appointment to completed.
func (ctl *Controller) CompleteAppointment(c *gin.Context) {
	appt, err := ctl.Booking.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment completed",
		"Data":    appt,
	})
}

// CancelAppointment cancels a pending or confirmed appointment. Cancelling
// twice succeeds and leaves the record cancelled.
func (ctl *Controller) CancelAppointment(c *gin.Context) {
	appt, err := ctl.Booking.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Cache.Invalidate(c.Request.Context(), appt.DoctorID, appt.Date)
	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment cancelled",
		"Data":    appt,
	})
}

// RescheduleAppointment moves an appointment to a new date and/or time slot.
func (ctl *Controller) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" && req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to reschedule: provide date and/or time"})
		return
	}

	id := c.Param("id")
	before, err := ctl.Store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	appt, err := ctl.Booking.Reschedule(c.Request.Context(), id, req.Date, req.Time)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Cache.Invalidate(c.Request.Context(), before.DoctorID, before.Date)
	ctl.Cache.Invalidate(c.Request.Context(), appt.DoctorID, appt.Date)
	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment rescheduled",
		"Data":    appt,
	})
}

// listFilterFromQuery builds a store filter from list query parameters.
func listFilterFromQuery(c *gin.Context) (scheduling.ListFilter, bool) {
	filter := scheduling.ListFilter{
		DoctorID:  c.Query("doctor_id"),
		PatientID: c.Query("patient_id"),
		DateFrom:  c.Query("from"),
		DateTo:    c.Query("to"),
	}
	if status := c.Query("status"); status != "" {
		s := models.BookingStatus(status)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return filter, false
		}
		filter.Status = s
	}

	var err error
	if filter.DateFrom != "" {
		if filter.DateFrom, err = scheduling.NormalizeDate(filter.DateFrom); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
			return filter, false
		}
	}
	if filter.DateTo != "" {
		if filter.DateTo, err = scheduling.NormalizeDate(filter.DateTo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
			return filter, false
		}
	}
	return filter, true
}
