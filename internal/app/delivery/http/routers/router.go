package routers

import (
	"fmt"
	"strings"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/delivery/http/controllers"
	"vetcare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	scheduleController *controllers.ScheduleController,
	appointmentController *controllers.AppointmentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   strings.Split(internalConfig.App.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	window := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, window))

	if internalConfig.App.RequestBodyLimitInMegabyte > 0 {
		router.Use(chiMiddleware.RequestSize(int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20))
	}

	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, middlewares, scheduleController, appointmentController)
			})

			r.Route("/schedules", func(r chi.Router) {
				attachScheduleRoutes(r, middlewares, scheduleController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, appointmentController)
			})
		})
	})
}
