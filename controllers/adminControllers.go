package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-connect/models"
)

// ListAppointments returns appointments filtered by doctor, patient, status
// and date range, in insertion order.
func (ctl *Controller) ListAppointments(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	appts, err := ctl.Store.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointments fetched successfully",
		"data":    appts,
	})
}

// PurgeAppointment physically removes a record. This is the only path that
// deletes; cancellation never does.
func (ctl *Controller) PurgeAppointment(c *gin.Context) {
	id := c.Param("id")
	appt, err := ctl.Store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.Store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	ctl.Cache.Invalidate(c.Request.Context(), appt.DoctorID, appt.Date)
	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment purged",
	})
}

type ApproveDoctorRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// ApproveDoctor flips the catalog approval flag, the one doctor field an
// admin may change.
func (ctl *Controller) ApproveDoctor(c *gin.Context) {
	var req ApproveDoctorRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Approved == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing approved field"})
		return
	}

	doctor, err := ctl.Catalog.SetApproved(c.Request.Context(), c.Param("id"), *req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctor approval updated",
		"data":    doctorInfo(*doctor),
	})
}

// GetBookingStatusCounts is the admin stats endpoint: totals per booking
// status, recomputed on every call.
func (ctl *Controller) GetBookingStatusCounts(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	counts, err := ctl.Projections.CountsByStatus(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch booking counts"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":            "Success",
		"Message":           "Booking details fetched successfully",
		"TotalBookings":     total,
		"PendingBookings":   counts[models.StatusPending],
		"ConfirmedBookings": counts[models.StatusConfirmed],
		"CompletedBookings": counts[models.StatusCompleted],
		"CancelledBookings": counts[models.StatusCancelled],
	})
}

// GetDoctorWiseBookings reports booking volume and completed-consultation
// revenue per doctor.
func (ctl *Controller) GetDoctorWiseBookings(c *gin.Context) {
	rows, err := ctl.Projections.BookingsPerDoctor(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctor-wise data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "Doctor-wise data fetched successfully",
		"doctorData": rows,
	})
}

// GetSpecialtyWiseBookings reports booking volume and revenue per specialty.
func (ctl *Controller) GetSpecialtyWiseBookings(c *gin.Context) {
	rows, err := ctl.Projections.BookingsPerSpecialty(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch specialty-wise data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       "Specialty-wise data fetched successfully",
		"specialtyData": rows,
	})
}
