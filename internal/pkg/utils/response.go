package utils

import (
	"errors"
	"net/http"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication
	errorCode := constvars.ErrCodeInternal

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		if customErr.Code != "" {
			errorCode = customErr.Code
		}
		fields := []zap.Field{
			zap.Int(constvars.LoggingStatusCodeKey, code),
			zap.String(constvars.LoggingErrorCodeKey, errorCode),
			zap.Any("locations", customErr.Locations),
		}
		if code >= constvars.StatusInternalServerError {
			log.Error(customErr.DevMessage, fields...)
		} else {
			log.Warn(customErr.DevMessage, fields...)
		}
	} else if err != nil {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
		Code:          errorCode,
	}

	appEnvironment := GetEnvString("APP_ENV", constvars.AppEnvDevelopment)
	if customErr != nil && appEnvironment != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	json.NewEncoder(w).Encode(response)
}
