package notifier

import (
	"context"
	"sync"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type notificationService struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

// NewNotificationService opens a channel on conn and declares the durable queue the
// downstream notification worker consumes.
func NewNotificationService(conn *amqp091.Connection, queue string, logger *zap.Logger) (contracts.NotificationService, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		return nil, err
	}

	return &notificationService{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *notificationService) PublishAppointmentEvent(ctx context.Context, notification *requests.AppointmentNotification) error {
	requestID := utils.GetRequestID(ctx)

	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Type:         notification.Event,
		MessageId:    notification.AppointmentID + ":" + notification.Event,
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	s.mu.Lock()
	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	s.mu.Unlock()
	if err != nil {
		s.Log.Error("notificationService.PublishAppointmentEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("notificationService.PublishAppointmentEvent published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
		zap.String(constvars.LoggingAppointmentIDKey, notification.AppointmentID),
		zap.String("event", notification.Event),
	)
	return nil
}
