package routers

import (
	"time"
	"vetcare-service/internal/app/delivery/http/controllers"
	"vetcare-service/internal/app/delivery/http/middlewares"
	"vetcare-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, m *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	bookingLimiter := middlewares.NewRateLimiter(m.Log, m.InternalConfig.App.BookingMaxRequestsPerMinute, time.Minute, time.Minute)

	router.Use(m.Authenticate)
	router.With(m.RequireRole(constvars.RoleUser), bookingLimiter.Limit).Post("/", appointmentController.BookAppointment)
	router.With(m.RequireRole(constvars.RoleUser)).Get("/me", appointmentController.ListMyAppointments)
	router.With(m.RequireRole(constvars.RoleUser)).Get("/active", appointmentController.GetActiveAppointment)
	router.With(m.RequireRole(constvars.RoleUser, constvars.RoleDoctor)).Post("/{appointmentId}/cancel", appointmentController.CancelAppointment)
	router.With(m.RequireRole(constvars.RoleDoctor)).Post("/{appointmentId}/complete", appointmentController.CompleteAppointment)
}
