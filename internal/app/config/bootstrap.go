package config

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoClient    *mongo.Client
	MongoDB        *mongo.Database
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	Logrus         *logrus.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop if set will be called during Shutdown to stop the expiry worker
	WorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		b.Logrus.Println("Successfully stopped expiry worker")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	b.Logrus.Println("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	b.Logrus.Println("Successfully closing RabbitMQ")

	err = b.MongoClient.Disconnect(ctx)
	if err != nil {
		return err
	}
	b.Logrus.Println("Successfully closing MongoDB")

	// zap returns EINVAL syncing stdout on some platforms
	_ = b.Logger.Sync()
	b.Logrus.Println("Successfully closing Logger")

	return nil
}
