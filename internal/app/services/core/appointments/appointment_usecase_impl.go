package appointments

import (
	"context"
	"fmt"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const sweepBatchSize = 100

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	NotificationService   contracts.NotificationService
	LockService           contracts.LockerService
	Checker               *BookingChecker
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	scheduleUsecase contracts.ScheduleUsecase,
	notificationService contracts.NotificationService,
	lockService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	uc := &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		NotificationService:   notificationService,
		LockService:           lockService,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
	uc.Checker = &BookingChecker{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		UserRepository:        userRepository,
		ScheduleUsecase:       scheduleUsecase,
		Log:                   logger,
		ExpireStale:           uc.AutoExpire,
	}
	return uc
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, userID string, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.Any(constvars.LoggingRequestKey, request),
	)

	now := uc.now()
	attempt, err := buildBookingAttempt(userID, request, now)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.BookAppointment invalid slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	unlock, err := uc.lockDoctor(ctx, attempt.DoctorID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	checked, err := uc.Checker.Check(ctx, attempt)
	if err != nil {
		uc.Log.Info("appointmentUsecase.BookAppointment rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return nil, err
	}

	claimed, err := uc.DoctorRepository.ClaimSlot(ctx, attempt.DoctorID, attempt.SlotDate, attempt.Minutes)
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookAppointment error claiming slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !claimed {
		uc.Log.Info("appointmentUsecase.BookAppointment lost slot race",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, attempt.DoctorID),
			zap.String(constvars.LoggingSlotDateKey, attempt.SlotDate),
			zap.Int(constvars.LoggingSlotMinutesKey, attempt.Minutes),
		)
		return nil, exceptions.ErrSlotAlreadyBooked(attempt.DoctorID, attempt.SlotDate, attempt.Minutes)
	}

	appointment := &models.Appointment{
		DoctorID:     attempt.DoctorID,
		UserID:       userID,
		SlotDate:     attempt.SlotDate,
		SlotMinutes:  attempt.Minutes,
		SlotTime:     utils.FormatTimeLabel(attempt.Minutes),
		SlotStart:    utils.AtMinutes(attempt.Day, attempt.Minutes),
		SlotDuration: checked.SlotDuration,
		Amount:       checked.Doctor.Fees,
		DocData: models.DoctorSnapshot{
			Name:       checked.Doctor.Name,
			Speciality: checked.Doctor.Speciality,
			Image:      checked.Doctor.Image,
		},
		UserData: models.UserSnapshot{
			Name:  checked.User.Name,
			Email: checked.User.Email,
			Image: checked.User.Image,
		},
		CreatedAt: now,
	}

	saved, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		// another active appointment holds the slot, so the index entry stays
		if exceptions.HasCode(err, constvars.ErrCodeSlotAlreadyBooked) {
			uc.Log.Warn("appointmentUsecase.BookAppointment slot held by another appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
				zap.String(constvars.LoggingSlotDateKey, appointment.SlotDate),
				zap.Int(constvars.LoggingSlotMinutesKey, appointment.SlotMinutes),
			)
			return nil, err
		}
		uc.Log.Error("appointmentUsecase.BookAppointment error inserting appointment, releasing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.releaseSlot(ctx, appointment)
		return nil, err
	}

	uc.notify(ctx, saved, constvars.NotificationEventAppointmentBooked, constvars.NotificationMessageBooked)

	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, saved.ID),
	)
	response := toAppointmentResponse(*saved)
	return &response, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID, actorID string) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, actorID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	reason := constvars.CancelReasonUser
	switch actorID {
	case appointment.UserID:
	case appointment.DoctorID:
		reason = constvars.CancelReasonDoctor
	default:
		return nil, exceptions.ErrAppointmentNotOwned(appointmentID, actorID)
	}

	if appointment.Cancelled {
		uc.Log.Info("appointmentUsecase.CancelAppointment already cancelled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		response := toAppointmentResponse(*appointment)
		return &response, nil
	}
	if appointment.IsCompleted {
		return nil, exceptions.ErrAppointmentCompleted(appointmentID)
	}

	now := uc.now()
	cancelled, err := uc.AppointmentRepository.MarkCancelled(ctx, appointmentID, reason, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !cancelled {
		// Someone else moved it out of active between the read and the write.
		current, err := uc.findAppointment(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if current.IsCompleted {
			return nil, exceptions.ErrAppointmentCompleted(appointmentID)
		}
		response := toAppointmentResponse(*current)
		return &response, nil
	}

	appointment.Cancelled = true
	appointment.CancelReason = reason
	appointment.CancelledAt = &now

	if uc.InternalConfig.Scheduling.FreeSlotOnCancel {
		uc.releaseSlot(ctx, appointment)
	}
	uc.notify(ctx, appointment, constvars.NotificationEventAppointmentCancelled, constvars.NotificationMessageCancelled)

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := toAppointmentResponse(*appointment)
	return &response, nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID, doctorID string) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, exceptions.ErrAppointmentNotOwned(appointmentID, doctorID)
	}
	if appointment.IsCompleted {
		response := toAppointmentResponse(*appointment)
		return &response, nil
	}
	if appointment.Cancelled {
		return nil, exceptions.ErrAppointmentCancelled(appointmentID)
	}

	now := uc.now()
	completed, err := uc.AppointmentRepository.MarkCompleted(ctx, appointmentID, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CompleteAppointment error completing appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !completed {
		current, err := uc.findAppointment(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if current.Cancelled {
			return nil, exceptions.ErrAppointmentCancelled(appointmentID)
		}
		response := toAppointmentResponse(*current)
		return &response, nil
	}

	appointment.IsCompleted = true
	appointment.CompletedAt = &now
	uc.notify(ctx, appointment, constvars.NotificationEventAppointmentCompleted, constvars.NotificationMessageCompleted)

	uc.Log.Info("appointmentUsecase.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := toAppointmentResponse(*appointment)
	return &response, nil
}

// AutoExpire cancels appointment when it is still active and its slot start plus
// the configured grace has passed. Cancelled and completed appointments are never
// touched. appointment is updated in place when the expiry happens.
func (uc *appointmentUsecase) AutoExpire(ctx context.Context, appointment *models.Appointment, now time.Time) (bool, error) {
	requestID := utils.GetRequestID(ctx)
	if !appointment.IsExpired(now, uc.InternalConfig.Scheduling.ExpiryGrace()) {
		return false, nil
	}

	expired, err := uc.AppointmentRepository.MarkCancelled(ctx, appointment.ID, constvars.CancelReasonExpired, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.AutoExpire error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return false, err
	}
	if !expired {
		return false, nil
	}

	appointment.Cancelled = true
	appointment.CancelReason = constvars.CancelReasonExpired
	appointment.CancelledAt = &now

	if uc.InternalConfig.Scheduling.FreeSlotOnCancel {
		uc.releaseSlot(ctx, appointment)
	}
	uc.notify(ctx, appointment, constvars.NotificationEventAppointmentExpired, constvars.NotificationMessageAutoExpired)

	uc.Log.Info("appointmentUsecase.AutoExpire expired appointment",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Time("slot_start", appointment.SlotStart),
	)
	return true, nil
}

// SweepExpired expires every overdue active appointment in batches.
func (uc *appointmentUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	requestID := utils.GetRequestID(ctx)
	cutoff := now.Add(-uc.InternalConfig.Scheduling.ExpiryGrace())

	total := 0
	for {
		overdue, err := uc.AppointmentRepository.FindOverdue(ctx, cutoff, sweepBatchSize)
		if err != nil {
			uc.Log.Error("appointmentUsecase.SweepExpired error fetching overdue appointments",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return total, err
		}

		expiredInBatch := 0
		for i := range overdue {
			expired, err := uc.AutoExpire(ctx, &overdue[i], now)
			if err != nil {
				return total, err
			}
			if expired {
				expiredInBatch++
			}
		}
		total += expiredInBatch

		if len(overdue) < sweepBatchSize || expiredInBatch == 0 {
			break
		}
	}

	if total > 0 {
		uc.Log.Info("appointmentUsecase.SweepExpired finished",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, total),
		)
	}
	return total, nil
}

// ListMyAppointments expires the user's overdue appointments before listing them.
func (uc *appointmentUsecase) ListMyAppointments(ctx context.Context, userID string) ([]responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.ListMyAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	appointments, err := uc.AppointmentRepository.FindByUserID(ctx, userID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListMyAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.expireAndMap(ctx, appointments), nil
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointments, err := uc.AppointmentRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListDoctorAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.expireAndMap(ctx, appointments), nil
}

// HasActiveAppointment always reads the store so the answer reflects the latest
// book, cancel or expiry.
func (uc *appointmentUsecase) HasActiveAppointment(ctx context.Context, userID string) (*responses.ActiveAppointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.HasActiveAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	active, err := uc.AppointmentRepository.FindActiveByUserID(ctx, userID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.HasActiveAppointment error fetching active appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if active == nil {
		return &responses.ActiveAppointment{HasActive: false}, nil
	}

	expired, err := uc.AutoExpire(ctx, active, uc.now())
	if err != nil {
		return nil, err
	}
	if expired {
		return &responses.ActiveAppointment{HasActive: false}, nil
	}

	response := toAppointmentResponse(*active)
	return &responses.ActiveAppointment{HasActive: true, Appointment: &response}, nil
}

func (uc *appointmentUsecase) expireAndMap(ctx context.Context, appointments []models.Appointment) []responses.Appointment {
	now := uc.now()
	response := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		_, err := uc.AutoExpire(ctx, &appointments[i], now)
		if err != nil {
			uc.Log.Warn("appointmentUsecase.expireAndMap error expiring appointment",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingAppointmentIDKey, appointments[i].ID),
				zap.Error(err),
			)
		}
		response = append(response, toAppointmentResponse(appointments[i]))
	}
	return response
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.findAppointment error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(appointmentID)
	}
	return appointment, nil
}

// lockDoctor serializes bookings for one doctor. When redis itself fails the
// booking continues unlocked since the conditional slot claim still rejects
// double bookings.
func (uc *appointmentUsecase) lockDoctor(ctx context.Context, doctorID string) (func(), error) {
	requestID := utils.GetRequestID(ctx)
	key := fmt.Sprintf(constvars.RedisKeyBookingLockDoctorFormat, doctorID)
	scheduling := uc.InternalConfig.Scheduling

	attempts := scheduling.BookingLockRetryCount
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		acquired, token, err := uc.LockService.TryLock(ctx, key, scheduling.BookingLockTTL())
		if err != nil {
			uc.Log.Warn("appointmentUsecase.lockDoctor lock unavailable, continuing without it",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
			return func() {}, nil
		}
		if acquired {
			return func() {
				err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token)
				if err != nil {
					uc.Log.Warn("appointmentUsecase.lockDoctor error releasing lock",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingRedisKey, key),
						zap.Error(err),
					)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(scheduling.BookingLockRetryDelay()):
		}
	}

	uc.Log.Warn("appointmentUsecase.lockDoctor lock not acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Int("attempts", attempts),
	)
	return nil, exceptions.ErrBookingBusy(doctorID)
}

func (uc *appointmentUsecase) releaseSlot(ctx context.Context, appointment *models.Appointment) {
	err := uc.DoctorRepository.ReleaseSlot(ctx, appointment.DoctorID, appointment.SlotDate, appointment.SlotMinutes)
	if err != nil {
		uc.Log.Error("appointmentUsecase.releaseSlot error releasing slot",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
			zap.String(constvars.LoggingSlotDateKey, appointment.SlotDate),
			zap.Int(constvars.LoggingSlotMinutesKey, appointment.SlotMinutes),
			zap.Error(err),
		)
	}
}

// notify is best effort: the state change already happened.
func (uc *appointmentUsecase) notify(ctx context.Context, appointment *models.Appointment, event, message string) {
	err := uc.NotificationService.PublishAppointmentEvent(ctx, &requests.AppointmentNotification{
		Event:         event,
		AppointmentID: appointment.ID,
		UserID:        appointment.UserID,
		DoctorID:      appointment.DoctorID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Message:       message,
		OccurredAt:    uc.now(),
	})
	if err != nil {
		uc.Log.Warn("appointmentUsecase.notify error publishing notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

func buildBookingAttempt(userID string, request *requests.BookAppointment, now time.Time) (BookingAttempt, error) {
	day, err := utils.ParseISODate(request.SlotDate, now.Location())
	if err != nil {
		return BookingAttempt{}, exceptions.ErrInputValidation(err)
	}
	minutes, ok := utils.ParseTimeLabel(request.SlotTime)
	if !ok {
		return BookingAttempt{}, exceptions.ErrInputValidation(fmt.Errorf("invalid slot time %q", request.SlotTime))
	}
	return BookingAttempt{
		DoctorID: request.DoctorID,
		UserID:   userID,
		SlotDate: utils.ISODate(day),
		Day:      day,
		Minutes:  minutes,
		Now:      now,
	}, nil
}

func toAppointmentResponse(appointment models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:           appointment.ID,
		DoctorID:     appointment.DoctorID,
		UserID:       appointment.UserID,
		SlotDate:     appointment.SlotDate,
		SlotDateKey:  slotDateKey(appointment),
		SlotTime:     utils.FormatTimeLabel(appointment.SlotMinutes),
		SlotStart:    appointment.SlotStart.In(time.Local),
		SlotDuration: appointment.SlotDuration,
		Cancelled:    appointment.Cancelled,
		IsCompleted:  appointment.IsCompleted,
		CancelReason: appointment.CancelReason,
		Amount:       appointment.Amount,
		DocData: responses.DoctorBrief{
			Name:       appointment.DocData.Name,
			Speciality: appointment.DocData.Speciality,
			Image:      appointment.DocData.Image,
		},
		UserData: responses.UserBrief{
			Name:  appointment.UserData.Name,
			Email: appointment.UserData.Email,
			Image: appointment.UserData.Image,
		},
		CreatedAt: appointment.CreatedAt,
	}
}

// slotDateKey is derived from the stored calendar date. SlotStart comes back from
// mongo in UTC and can fall on the previous day.
func slotDateKey(appointment models.Appointment) string {
	day, err := utils.ParseISODate(appointment.SlotDate, time.Local)
	if err != nil {
		return utils.LegacyDateKey(appointment.SlotStart.In(time.Local))
	}
	return utils.LegacyDateKey(day)
}
