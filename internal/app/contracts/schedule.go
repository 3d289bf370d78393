package contracts

import (
	"context"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
)

type ScheduleUsecase interface {
	GetSchedulesByDoctorID(ctx context.Context, doctorID string) ([]responses.WeeklySchedule, error)
	// FindDoctorSchedules returns the stored schedules, served from cache when warm.
	FindDoctorSchedules(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error)
	UpsertSchedule(ctx context.Context, doctorID string, request *requests.UpsertSchedule) (*responses.WeeklySchedule, error)
	DeleteSchedule(ctx context.Context, scheduleID, doctorID string) error
	ToggleScheduleActive(ctx context.Context, scheduleID, doctorID string) (*responses.WeeklySchedule, error)
	GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error)
}

type ScheduleRepository interface {
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error)
	FindByID(ctx context.Context, scheduleID string) (*models.WeeklySchedule, error)
	Upsert(ctx context.Context, schedule *models.WeeklySchedule) (*models.WeeklySchedule, error)
	ToggleActive(ctx context.Context, scheduleID, doctorID string) (*models.WeeklySchedule, error)
	Delete(ctx context.Context, scheduleID, doctorID string) error
	EnsureIndexes(ctx context.Context) error
}
