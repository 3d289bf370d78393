package appointments

import (
	"context"
	"time"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/app/services/core/slot"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// BookingAttempt is one user's request for one doctor slot.
type BookingAttempt struct {
	DoctorID string
	UserID   string
	SlotDate string
	Day      time.Time
	Minutes  int
	Now      time.Time
}

// CheckedBooking carries what the checks loaded so the caller does not read it twice.
type CheckedBooking struct {
	Doctor       *models.Doctor
	User         *models.User
	SlotDuration int
}

// BookingChecker validates a booking attempt. Checks run in a fixed order and the
// first failure is returned:
//  1. the user holds no active appointment
//  2. the doctor takes bookings and the slot is not in its booked index
//  3. the account exists and is verified
//  4. the account is not banned
//  5. the slot is one the generator would offer
type BookingChecker struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	ScheduleUsecase       contracts.ScheduleUsecase
	Log                   *zap.Logger
	// ExpireStale is given an active appointment whose slot has passed. It reports
	// whether the appointment was expired, in which case it no longer blocks booking.
	ExpireStale func(ctx context.Context, appointment *models.Appointment, now time.Time) (bool, error)
}

func (c *BookingChecker) Check(ctx context.Context, attempt BookingAttempt) (*CheckedBooking, error) {
	requestID := utils.GetRequestID(ctx)

	err := c.checkNoActiveAppointment(ctx, attempt)
	if err != nil {
		return nil, err
	}

	doctor, err := c.DoctorRepository.FindByID(ctx, attempt.DoctorID)
	if err != nil {
		c.Log.Error("BookingChecker.Check error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, attempt.DoctorID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(attempt.DoctorID)
	}
	if !doctor.Available {
		c.Log.Info("BookingChecker.Check doctor unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, attempt.DoctorID),
		)
		return nil, exceptions.ErrDoctorUnavailable(attempt.DoctorID)
	}
	if doctor.SlotsBooked.Has(attempt.SlotDate, attempt.Minutes) {
		c.Log.Info("BookingChecker.Check slot already booked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, attempt.DoctorID),
			zap.String(constvars.LoggingSlotDateKey, attempt.SlotDate),
			zap.Int(constvars.LoggingSlotMinutesKey, attempt.Minutes),
		)
		return nil, exceptions.ErrSlotAlreadyBooked(attempt.DoctorID, attempt.SlotDate, attempt.Minutes)
	}

	user, err := c.UserRepository.FindByID(ctx, attempt.UserID)
	if err != nil {
		c.Log.Error("BookingChecker.Check error fetching user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, attempt.UserID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUnauthorized(attempt.UserID)
	}
	if !user.IsVerified {
		return nil, exceptions.ErrNotVerified(attempt.UserID)
	}
	if user.IsBanned {
		return nil, exceptions.ErrAccountBanned(attempt.UserID, user.BanReason)
	}

	schedules, err := c.ScheduleUsecase.FindDoctorSchedules(ctx, attempt.DoctorID)
	if err != nil {
		return nil, err
	}
	if !slot.IsBookable(schedules, attempt.Day, attempt.Minutes, attempt.Now) {
		c.Log.Info("BookingChecker.Check slot outside bookable window",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, attempt.DoctorID),
			zap.String(constvars.LoggingSlotDateKey, attempt.SlotDate),
			zap.Int(constvars.LoggingSlotMinutesKey, attempt.Minutes),
		)
		return nil, exceptions.ErrSlotUnavailable(attempt.DoctorID, attempt.SlotDate, attempt.Minutes)
	}

	return &CheckedBooking{
		Doctor:       doctor,
		User:         user,
		SlotDuration: slot.SlotDuration(schedules, attempt.Day),
	}, nil
}

func (c *BookingChecker) checkNoActiveAppointment(ctx context.Context, attempt BookingAttempt) error {
	active, err := c.AppointmentRepository.FindActiveByUserID(ctx, attempt.UserID)
	if err != nil {
		c.Log.Error("BookingChecker.checkNoActiveAppointment error fetching active appointment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingUserIDKey, attempt.UserID),
			zap.Error(err),
		)
		return err
	}
	if active == nil {
		return nil
	}

	if c.ExpireStale != nil {
		expired, err := c.ExpireStale(ctx, active, attempt.Now)
		if err != nil {
			return err
		}
		if expired {
			return nil
		}
	}
	return exceptions.ErrActiveAppointmentExists(attempt.UserID)
}
