package contracts

import (
	"context"
	"vetcare-service/internal/pkg/dto/requests"
)

type NotificationService interface {
	PublishAppointmentEvent(ctx context.Context, notification *requests.AppointmentNotification) error
}
