package exceptions

import (
	"fmt"
	"vetcare-service/internal/pkg/constvars"
)

var (
	ErrActiveAppointmentExists = func(userID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientActiveAppointmentExists, fmt.Sprintf(constvars.ErrDevActiveAppointmentExists, userID)).WithCode(constvars.ErrCodeActiveAppointmentExists)
	}
	ErrSlotAlreadyBooked = func(doctorID, slotDate string, minutes int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientSlotAlreadyBooked, fmt.Sprintf(constvars.ErrDevSlotAlreadyBooked, slotDate, minutes, doctorID)).WithCode(constvars.ErrCodeSlotAlreadyBooked)
	}
	ErrSlotUnavailable = func(doctorID, slotDate string, minutes int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientSlotUnavailable, fmt.Sprintf(constvars.ErrDevSlotUnavailable, slotDate, minutes, doctorID)).WithCode(constvars.ErrCodeSlotUnavailable)
	}
	ErrUnauthorized = func(userID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, fmt.Sprintf(constvars.ErrDevAccountNotFound, userID)).WithCode(constvars.ErrCodeUnauthorized)
	}
	ErrNotVerified = func(userID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientAccountNotVerified, fmt.Sprintf(constvars.ErrDevAccountNotVerified, userID)).WithCode(constvars.ErrCodeNotVerified)
	}
	ErrAccountBanned = func(userID, reason string) *CustomError {
		clientMessage := constvars.ErrClientAccountBanned
		if reason != "" {
			clientMessage = fmt.Sprintf(constvars.ErrClientAccountBannedFormat, reason)
		}
		return BuildNewCustomError(nil, constvars.StatusForbidden, clientMessage, fmt.Sprintf(constvars.ErrDevAccountBanned, userID)).WithCode(constvars.ErrCodeAccountBanned)
	}
	ErrDoctorNotFound = func(doctorID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, doctorID)).WithCode(constvars.ErrCodeNotFound)
	}
	ErrDoctorUnavailable = func(doctorID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientDoctorUnavailable, fmt.Sprintf(constvars.ErrDevDoctorUnavailable, doctorID)).WithCode(constvars.ErrCodeDoctorUnavailable)
	}
	ErrBookingBusy = func(doctorID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusServiceUnavailable, constvars.ErrClientBookingBusy, fmt.Sprintf(constvars.ErrDevBookingLockNotAcquired, doctorID)).WithCode(constvars.ErrCodeBookingBusy)
	}

	ErrScheduleNotFound = func(scheduleID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevScheduleNotFound, scheduleID)).WithCode(constvars.ErrCodeNotFound)
	}
	ErrScheduleNotOwned = func(scheduleID, doctorID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevScheduleNotOwned, scheduleID, doctorID)).WithCode(constvars.ErrCodeForbidden)
	}
	ErrScheduleInvalidWindow = func(startTime, endTime string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientScheduleInvalidWindow, fmt.Sprintf(constvars.ErrDevScheduleInvalidWindow, startTime, endTime)).WithCode(constvars.ErrCodeValidation)
	}

	ErrAppointmentNotFound = func(appointmentID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, appointmentID)).WithCode(constvars.ErrCodeNotFound)
	}
	ErrAppointmentNotOwned = func(appointmentID, actorID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevAppointmentNotOwned, appointmentID, actorID)).WithCode(constvars.ErrCodeForbidden)
	}
	ErrAppointmentCompleted = func(appointmentID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientAppointmentCompleted, fmt.Sprintf(constvars.ErrDevAppointmentCompleted, appointmentID)).WithCode(constvars.ErrCodeAppointmentCompleted)
	}
	ErrAppointmentCancelled = func(appointmentID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientAppointmentCancelled, fmt.Sprintf(constvars.ErrDevAppointmentCancelled, appointmentID)).WithCode(constvars.ErrCodeAppointmentCancelled)
	}
)
