package contracts

import (
	"context"
	"time"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, userID string, request *requests.BookAppointment) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID, actorID string) (*responses.Appointment, error)
	CompleteAppointment(ctx context.Context, appointmentID, doctorID string) (*responses.Appointment, error)
	AutoExpire(ctx context.Context, appointment *models.Appointment, now time.Time) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	ListMyAppointments(ctx context.Context, userID string) ([]responses.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error)
	HasActiveAppointment(ctx context.Context, userID string) (*responses.ActiveAppointment, error)
}

type AppointmentRepository interface {
	// Insert fails with ActiveAppointmentExists when the user already holds an active appointment.
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindActiveByUserID(ctx context.Context, userID string) (*models.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// FindOverdue returns active appointments whose slot started at or before cutoff.
	FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error)
	// MarkCancelled and MarkCompleted only touch active appointments and report
	// whether this call performed the transition.
	MarkCancelled(ctx context.Context, appointmentID, reason string, at time.Time) (bool, error)
	MarkCompleted(ctx context.Context, appointmentID string, at time.Time) (bool, error)
	EnsureIndexes(ctx context.Context) error
}
