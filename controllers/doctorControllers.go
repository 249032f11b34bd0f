package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-connect/models"
	"health-connect/scheduling"
)

// DoctorInfo is the catalog view served to clients.
type DoctorInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Experience      int      `json:"experience"`
	Hospital        string   `json:"hospital"`
	Rating          float64  `json:"rating"`
	ConsultationFee uint32   `json:"consultationFee"`
	Approved        bool     `json:"approved"`
	Bio             string   `json:"bio"`
	AvailableSlots  []string `json:"availableSlots"`
}

func doctorInfo(d models.Doctor) DoctorInfo {
	return DoctorInfo{
		ID:              d.DoctorID,
		Name:            d.Name,
		Specialty:       d.Specialty,
		Experience:      d.Experience,
		Hospital:        d.Hospital,
		Rating:          d.Rating,
		ConsultationFee: d.ConsultationFee,
		Approved:        d.Approved,
		Bio:             d.Bio,
		AvailableSlots:  d.SlotLabels(),
	}
}

func doctorInfoList(doctors []models.Doctor) []DoctorInfo {
	out := make([]DoctorInfo, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, doctorInfo(d))
	}
	return out
}

// GetDoctors lists the seeded doctor catalog.
func (ctl *Controller) GetDoctors(c *gin.Context) {
	doctors, err := ctl.Catalog.Doctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get doctors details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctors details list fetched successfully",
		"data":    doctorInfoList(doctors),
	})
}

// GetDoctorByID fetches one doctor with its offered slots.
func (ctl *Controller) GetDoctorByID(c *gin.Context) {
	doctor, err := ctl.Catalog.DoctorByID(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   doctorInfo(*doctor),
	})
}

// GetDoctorsBySpecialty lists doctors for one specialty.
func (ctl *Controller) GetDoctorsBySpecialty(c *gin.Context) {
	doctors, err := ctl.Catalog.DoctorsBySpecialty(c.Request.Context(), c.Param("specialty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get doctors details"})
		return
	}
	if len(doctors) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No doctors found with the specified specialty"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctors details list fetched successfully",
		"data":    doctorInfoList(doctors),
	})
}

// GetAvailableTimeSlots returns the doctor's open slots for one date:
// catalog slots minus non-cancelled bookings. Responses are cached per
// (doctor, date) and invalidated by every booking mutation.
func (ctl *Controller) GetAvailableTimeSlots(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	// Cache keys must match the normalized dates the invalidations use,
	// so normalize before any cache access.
	date, err := scheduling.NormalizeDate(dateStr)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if slots, ok := ctl.Cache.Get(ctx, doctorID, date); ok {
		c.JSON(http.StatusOK, gin.H{
			"message":              "Time slots fetched successfully",
			"date":                 date,
			"available_time_slots": slots,
		})
		return
	}

	slots, err := ctl.Projections.AvailableSlots(ctx, doctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Cache.Set(ctx, doctorID, date, slots)
	c.JSON(http.StatusOK, gin.H{
		"message":              "Time slots fetched successfully",
		"date":                 date,
		"available_time_slots": slots,
	})
}

// GetDoctorSchedule returns the doctor's appointments in an optional date
// range, sorted by date and slot time.
func (ctl *Controller) GetDoctorSchedule(c *gin.Context) {
	ctx := c.Request.Context()
	doctorID := c.Param("doctor_id")
	if _, err := ctl.Catalog.DoctorByID(ctx, doctorID); err != nil {
		respondError(c, err)
		return
	}

	schedule, err := ctl.Projections.ScheduleForDoctor(ctx, doctorID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Schedule fetched successfully",
		"data":    schedule,
	})
}
