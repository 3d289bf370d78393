package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingDataKey          = "data"
	LoggingRequestKey       = "request"
	LoggingResponseKey      = "response"
	LoggingErrorCodeKey     = "error_code"
	LoggingErrorMessageKey  = "error_message"
	LoggingOperationKey     = "operation"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingUserIDKey        = "user_id"
	LoggingDoctorIDKey      = "doctor_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingScheduleIDKey    = "schedule_id"
	LoggingSlotDateKey      = "slot_date"
	LoggingSlotMinutesKey   = "slot_minutes"
	LoggingCountKey         = "count"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
)
