package schedules

import (
	"context"
	"fmt"
	"slices"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/app/services/core/slot"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	DoctorRepository   contracts.DoctorRepository
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
	now                func() time.Time
}

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	doctorRepository contracts.DoctorRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	return &scheduleUsecase{
		ScheduleRepository: scheduleRepository,
		DoctorRepository:   doctorRepository,
		RedisRepository:    redisRepository,
		InternalConfig:     internalConfig,
		Log:                logger,
		now:                time.Now,
	}
}

func (uc *scheduleUsecase) GetSchedulesByDoctorID(ctx context.Context, doctorID string) ([]responses.WeeklySchedule, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.GetSchedulesByDoctorID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	schedules, err := uc.FindDoctorSchedules(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(schedules, func(a, b models.WeeklySchedule) int {
		return weekdayIndex(a.DayOfWeek) - weekdayIndex(b.DayOfWeek)
	})

	response := make([]responses.WeeklySchedule, 0, len(schedules))
	for _, schedule := range schedules {
		response = append(response, toScheduleResponse(schedule))
	}

	uc.Log.Info("scheduleUsecase.GetSchedulesByDoctorID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	return response, nil
}

// FindDoctorSchedules reads through the redis cache. Cache failures are logged and
// fall back to mongo.
func (uc *scheduleUsecase) FindDoctorSchedules(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error) {
	requestID := utils.GetRequestID(ctx)
	cacheKey := scheduleCacheKey(doctorID)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("scheduleUsecase.FindDoctorSchedules error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	} else if cached != "" {
		var schedules []models.WeeklySchedule
		err = json.Unmarshal([]byte(cached), &schedules)
		if err == nil {
			return schedules, nil
		}
		uc.Log.Warn("scheduleUsecase.FindDoctorSchedules error decoding cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	schedules, err := uc.ScheduleRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.FindDoctorSchedules error fetching schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.RedisRepository.Set(ctx, cacheKey, schedules, uc.InternalConfig.Scheduling.ScheduleCacheTTL())
	if err != nil {
		uc.Log.Warn("scheduleUsecase.FindDoctorSchedules error writing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	return schedules, nil
}

func (uc *scheduleUsecase) UpsertSchedule(ctx context.Context, doctorID string, request *requests.UpsertSchedule) (*responses.WeeklySchedule, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.UpsertSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Any(constvars.LoggingRequestKey, request),
	)

	weekday, ok := utils.ParseWeekday(request.DayOfWeek)
	if !ok {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("unknown weekday %q", request.DayOfWeek))
	}

	schedule := &models.WeeklySchedule{
		DoctorID:     doctorID,
		DayOfWeek:    weekday,
		StartTime:    request.StartTime,
		EndTime:      request.EndTime,
		SlotDuration: request.SlotDuration,
	}
	if _, _, ok := schedule.Window(); !ok {
		uc.Log.Warn("scheduleUsecase.UpsertSchedule invalid window",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("start_time", request.StartTime),
			zap.String("end_time", request.EndTime),
		)
		return nil, exceptions.ErrScheduleInvalidWindow(request.StartTime, request.EndTime)
	}

	saved, err := uc.ScheduleRepository.Upsert(ctx, schedule)
	if err != nil {
		uc.Log.Error("scheduleUsecase.UpsertSchedule error upserting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidateCache(ctx, doctorID)

	uc.Log.Info("scheduleUsecase.UpsertSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, saved.ID),
	)
	response := toScheduleResponse(*saved)
	return &response, nil
}

func (uc *scheduleUsecase) DeleteSchedule(ctx context.Context, scheduleID, doctorID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.DeleteSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	_, err := uc.findOwnedSchedule(ctx, scheduleID, doctorID)
	if err != nil {
		return err
	}

	err = uc.ScheduleRepository.Delete(ctx, scheduleID, doctorID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.DeleteSchedule error deleting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	uc.invalidateCache(ctx, doctorID)

	uc.Log.Info("scheduleUsecase.DeleteSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)
	return nil
}

func (uc *scheduleUsecase) ToggleScheduleActive(ctx context.Context, scheduleID, doctorID string) (*responses.WeeklySchedule, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.ToggleScheduleActive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	_, err := uc.findOwnedSchedule(ctx, scheduleID, doctorID)
	if err != nil {
		return nil, err
	}

	saved, err := uc.ScheduleRepository.ToggleActive(ctx, scheduleID, doctorID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ToggleScheduleActive error toggling schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if saved == nil {
		return nil, exceptions.ErrScheduleNotFound(scheduleID)
	}
	uc.invalidateCache(ctx, doctorID)

	uc.Log.Info("scheduleUsecase.ToggleScheduleActive succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
		zap.Bool("is_active", saved.IsActive),
	)
	response := toScheduleResponse(*saved)
	return &response, nil
}

func (uc *scheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.GetAvailableSlots error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(doctorID)
	}
	if !doctor.Available {
		uc.Log.Info("scheduleUsecase.GetAvailableSlots doctor unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
		)
		return []responses.DaySlots{}, nil
	}

	schedules, err := uc.FindDoctorSchedules(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	days := slot.Generate(slot.GenerateInput{
		Schedules: schedules,
		Booked:    doctor.SlotsBooked,
		Now:       uc.now(),
	})

	uc.Log.Info("scheduleUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(days)),
	)
	return slot.ToResponse(days), nil
}

func (uc *scheduleUsecase) findOwnedSchedule(ctx context.Context, scheduleID, doctorID string) (*models.WeeklySchedule, error) {
	requestID := utils.GetRequestID(ctx)

	schedule, err := uc.ScheduleRepository.FindByID(ctx, scheduleID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.findOwnedSchedule error fetching schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if schedule == nil {
		return nil, exceptions.ErrScheduleNotFound(scheduleID)
	}
	if schedule.DoctorID != doctorID {
		uc.Log.Warn("scheduleUsecase.findOwnedSchedule schedule owned by another doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
		)
		return nil, exceptions.ErrScheduleNotOwned(scheduleID, doctorID)
	}
	return schedule, nil
}

func (uc *scheduleUsecase) invalidateCache(ctx context.Context, doctorID string) {
	cacheKey := scheduleCacheKey(doctorID)
	err := uc.RedisRepository.Delete(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("scheduleUsecase.invalidateCache error deleting cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

func scheduleCacheKey(doctorID string) string {
	return fmt.Sprintf(constvars.RedisKeySchedulesCacheFormat, doctorID)
}

func weekdayIndex(day string) int {
	// Monday first
	idx := slices.Index(constvars.Weekdays, day)
	if idx < 0 {
		return len(constvars.Weekdays)
	}
	return (idx + 6) % 7
}

func toScheduleResponse(schedule models.WeeklySchedule) responses.WeeklySchedule {
	return responses.WeeklySchedule{
		ID:           schedule.ID,
		DoctorID:     schedule.DoctorID,
		DayOfWeek:    schedule.DayOfWeek,
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		SlotDuration: schedule.SlotDuration,
		IsActive:     schedule.IsActive,
		UpdatedAt:    schedule.UpdatedAt,
	}
}
