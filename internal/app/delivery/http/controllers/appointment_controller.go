package controllers

import (
	"context"
	"net/http"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	userID := utils.GetAuthUserID(r.Context())
	ctrl.Log.Info("AppointmentController.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	request := new(requests.BookAppointment)
	err := utils.DecodeAndValidate(r, request)
	if err != nil {
		ctrl.Log.Warn("AppointmentController.BookAppointment invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.SanitizeBookAppointmentRequest(request)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.BookAppointment(ctx, userID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookAppointmentSuccessMessage, response)
}

// CancelAppointment serves both the booking user and the assigned doctor.
func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	actorID := utils.GetAuthUserID(r.Context())
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	ctrl.Log.Info("AppointmentController.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CancelAppointment(ctx, appointmentID, actorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := utils.GetAuthUserID(r.Context())
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	ctrl.Log.Info("AppointmentController.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CompleteAppointment(ctx, appointmentID, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CompleteAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	userID := utils.GetAuthUserID(r.Context())
	ctrl.Log.Info("AppointmentController.ListMyAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListMyAppointments(ctx, userID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, response)
}

func (ctrl *AppointmentController) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID := utils.GetAuthUserID(r.Context())
	ctrl.Log.Info("AppointmentController.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, response)
}

func (ctrl *AppointmentController) GetActiveAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	userID := utils.GetAuthUserID(r.Context())
	ctrl.Log.Info("AppointmentController.GetActiveAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.HasActiveAppointment(ctx, userID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	message := constvars.GetActiveAppointmentSuccessMessage
	if !response.HasActive {
		message = constvars.GetNoActiveAppointmentSuccessMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}
