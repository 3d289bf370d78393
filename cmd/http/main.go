package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/delivery/http/controllers"
	"vetcare-service/internal/app/delivery/http/middlewares"
	"vetcare-service/internal/app/delivery/http/routers"
	"vetcare-service/internal/app/drivers/database"
	"vetcare-service/internal/app/drivers/logger"
	"vetcare-service/internal/app/drivers/messaging"
	"vetcare-service/internal/app/services/core/appointments"
	"vetcare-service/internal/app/services/core/doctors"
	"vetcare-service/internal/app/services/core/schedules"
	"vetcare-service/internal/app/services/core/users"
	"vetcare-service/internal/app/services/shared/locker"
	"vetcare-service/internal/app/services/shared/notifier"
	"vetcare-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig, log)
	mongoClient := database.NewMongoDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DbName),
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		Logrus:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Printf("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	notificationService, err := notifier.NewNotificationService(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.NotificationQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)
	scheduleRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)

	// Usecases
	scheduleUsecase := schedules.NewScheduleUsecase(
		scheduleRepository,
		doctorRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		doctorRepository,
		userRepository,
		scheduleUsecase,
		notificationService,
		lockService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Expiry worker
	expiryWorker := appointments.NewExpiryWorker(bootstrap.Logger, bootstrap.InternalConfig, lockService, appointmentUsecase)
	expiryWorker.Start(context.Background())
	bootstrap.WorkerStop = expiryWorker.Stop

	// HTTP
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, scheduleController, appointmentController)
	return nil
}
