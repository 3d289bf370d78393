package routers

import (
	"vetcare-service/internal/app/delivery/http/controllers"
	"vetcare-service/internal/app/delivery/http/middlewares"
	"vetcare-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController, appointmentController *controllers.AppointmentController) {
	router.Get("/{doctorId}/schedules", scheduleController.GetDoctorSchedules)
	router.Get("/{doctorId}/slots", scheduleController.GetAvailableSlots)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.RoleDoctor)).Get("/me/appointments", appointmentController.ListDoctorAppointments)
}

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Use(middlewares.Authenticate, middlewares.RequireRole(constvars.RoleDoctor))
	router.Post("/", scheduleController.UpsertSchedule)
	router.Delete("/{scheduleId}", scheduleController.DeleteSchedule)
	router.Patch("/{scheduleId}/toggle", scheduleController.ToggleSchedule)
}
