package main

import (
	"context"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/contracts"
	"vetcare-service/internal/app/drivers/database"
	"vetcare-service/internal/app/drivers/logger"
	"vetcare-service/internal/app/services/core/appointments"
	"vetcare-service/internal/app/services/core/schedules"
	"vetcare-service/internal/pkg/constvars"
)

// Creates the collection indexes the booking flow depends on. Safe to run repeatedly.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig, log)
	db := mongoClient.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	targets := map[string]contracts.IndexEnsurer{
		constvars.MongoCollectionWeeklySchedules: schedules.NewScheduleMongoRepository(db),
		constvars.MongoCollectionAppointments:    appointments.NewAppointmentMongoRepository(db),
	}
	for name, repository := range targets {
		err := repository.EnsureIndexes(ctx)
		if err != nil {
			log.Fatalf("Error ensuring indexes on %s: %v", name, err)
		}
		log.Printf("Indexes ensured on %s", name)
	}

	err := mongoClient.Disconnect(ctx)
	if err != nil {
		log.Fatalf("Error closing MongoDB: %v", err)
	}
}
