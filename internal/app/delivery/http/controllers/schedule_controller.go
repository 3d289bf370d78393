package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
}

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase) *ScheduleController {
	return &ScheduleController{
		Log:             logger,
		ScheduleUsecase: scheduleUsecase,
	}
}

func (ctrl *ScheduleController) GetDoctorSchedules(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	ctrl.Log.Info("ScheduleController.GetDoctorSchedules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.GetSchedulesByDoctorID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.GetDoctorSchedules error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSchedulesSuccessMessage, response)
}

func (ctrl *ScheduleController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	ctrl.Log.Info("ScheduleController.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.GetAvailableSlots(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.GetAvailableSlots error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableSlotsSuccessMessage, response)
}

func (ctrl *ScheduleController) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := utils.GetAuthUserID(r.Context())
	ctrl.Log.Info("ScheduleController.UpsertSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	request := new(requests.UpsertSchedule)
	err := utils.DecodeAndValidate(r, request)
	if err != nil {
		ctrl.Log.Warn("ScheduleController.UpsertSchedule invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.SanitizeUpsertScheduleRequest(request)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.UpsertSchedule(ctx, doctorID, request)
	if err != nil {
		ctrl.Log.Error("ScheduleController.UpsertSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpsertScheduleSuccessMessage, response)
}

func (ctrl *ScheduleController) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := utils.GetAuthUserID(r.Context())
	scheduleID := chi.URLParam(r, constvars.URLParamScheduleID)
	ctrl.Log.Info("ScheduleController.DeleteSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.ScheduleUsecase.DeleteSchedule(ctx, scheduleID, doctorID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.DeleteSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteScheduleSuccessMessage, nil)
}

func (ctrl *ScheduleController) ToggleSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := utils.GetAuthUserID(r.Context())
	scheduleID := chi.URLParam(r, constvars.URLParamScheduleID)
	ctrl.Log.Info("ScheduleController.ToggleSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ScheduleUsecase.ToggleScheduleActive(ctx, scheduleID, doctorID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.ToggleSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ToggleScheduleSuccessMessage, response)
}

const requestTimeout = 10 * time.Second

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
