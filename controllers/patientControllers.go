package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"health-connect/models"
)

type RegisterPatientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
}

// RegisterPatient creates a patient record. There is no session or login
// here; the id returned is what booking requests carry.
func (ctl *Controller) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
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

	patient := &models.Patient{
		PatientID: uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Age:       req.Age,
		Gender:    req.Gender,
		Address:   req.Address,
	}
	if err := ctl.Patients.CreatePatient(c.Request.Context(), patient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register patient"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"Status":  "Success",
		"Message": "Patient registered successfully",
		"data":    patient,
	})
}

// GetPatient fetches one patient record.
func (ctl *Controller) GetPatient(c *gin.Context) {
	patient, err := ctl.Patients.PatientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   patient,
	})
}

// GetAppointmentHistory lists all appointments ever booked by the patient,
// cancelled ones included.
func (ctl *Controller) GetAppointmentHistory(c *gin.Context) {
	ctx := c.Request.Context()
	patientID := c.Param("id")
	if _, err := ctl.Patients.PatientByID(ctx, patientID); err != nil {
		respondError(c, err)
		return
	}

	history, err := ctl.Projections.HistoryForPatient(ctx, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointment history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment history fetched successfully",
		"data":    history,
	})
}
