package config

import (
	"vetcare-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "vetcare"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", "development"),
			Port:                        utils.GetEnvString("APP_PORT", ":8080"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			AllowedOrigins:              utils.GetEnvString("APP_ALLOWED_ORIGINS", "*"),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:             utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:   utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:  utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			BookingMaxRequestsPerMinute: utils.GetEnvInt("APP_BOOKING_MAX_REQUESTS_PER_MINUTE", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Scheduling: Scheduling{
			FreeSlotOnCancel:                utils.GetEnvBool("APP_FREE_SLOT_ON_CANCEL", false),
			AppointmentExpiryGraceInMinutes: utils.GetEnvInt("APP_APPOINTMENT_EXPIRY_GRACE_IN_MINUTES", 0),
			ExpiryWorkerCronSpec:            utils.GetEnvString("APP_EXPIRY_WORKER_CRON_SPEC", "@every 1m"),
			ExpiryWorkerLockTTLInSeconds:    utils.GetEnvInt("APP_EXPIRY_WORKER_LOCK_TTL_IN_SECONDS", 300),
			BookingLockTTLInSeconds:         utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 10),
			BookingLockRetryCount:           utils.GetEnvInt("APP_BOOKING_LOCK_RETRY_COUNT", 20),
			BookingLockRetryDelayInMillis:   utils.GetEnvInt("APP_BOOKING_LOCK_RETRY_DELAY_IN_MILLIS", 50),
			ScheduleCacheTTLInSeconds:       utils.GetEnvInt("APP_SCHEDULE_CACHE_TTL_IN_SECONDS", 300),
		},
		RabbitMQ: AppRabbitMQ{
			NotificationQueue: utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "vetcare.notifications"),
		},
	}
}
