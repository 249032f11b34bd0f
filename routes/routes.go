package routes

import (
	"github.com/gin-gonic/gin"

	"health-connect/controllers"
)

// SetupRoutes wires the full HTTP surface onto a default gin engine.
func SetupRoutes(ctl *controllers.Controller) *gin.Engine {
	r := gin.Default()

	// patient routes
	r.POST("/patients", ctl.RegisterPatient)
	r.GET("/patients/:id", ctl.GetPatient)
	r.GET("/patients/:id/appointments", ctl.GetAppointmentHistory)

	// doctor catalog routes
	r.GET("/doctors", ctl.GetDoctors)
	r.GET("/doctors/specialty/:specialty", ctl.GetDoctorsBySpecialty)
	r.GET("/doctors/:doctor_id", ctl.GetDoctorByID)
	r.GET("/doctors/:doctor_id/available-slots", ctl.GetAvailableTimeSlots)
	r.GET("/doctors/:doctor_id/schedule", ctl.GetDoctorSchedule)

	// appointment lifecycle routes
	r.POST("/appointments", ctl.BookAppointment)
	r.GET("/appointments/:id", ctl.GetAppointment)
	r.PATCH("/appointments/:id/confirm", ctl.ConfirmAppointment)
	r.PATCH("/appointments/:id/complete", ctl.CompleteAppointment)
	r.PATCH("/appointments/:id/cancel", ctl.CancelAppointment)
	r.PATCH("/appointments/:id/reschedule", ctl.RescheduleAppointment)

	// admin routes
	admin := r.Group("/admin")
	{
		admin.GET("/appointments", ctl.ListAppointments)
		admin.DELETE("/appointments/:id", ctl.PurgeAppointment)
		admin.PATCH("/doctors/:id/approve", ctl.ApproveDoctor)
		admin.GET("/reports/status-counts", ctl.GetBookingStatusCounts)
		admin.GET("/reports/doctor-wise", ctl.GetDoctorWiseBookings)
		admin.GET("/reports/specialty-wise", ctl.GetSpecialtyWiseBookings)
	}

	return r
}
