package utils

import (
	"context"
	"time"

	"vetcare-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("business_event", event),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Info("Business event occurred", allFields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetAuthUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(constvars.CONTEXT_AUTH_USER_ID_KEY).(string); ok {
		return userID
	}
	return ""
}

func GetAuthRole(ctx context.Context) string {
	if role, ok := ctx.Value(constvars.CONTEXT_AUTH_ROLE_KEY).(string); ok {
		return role
	}
	return ""
}
