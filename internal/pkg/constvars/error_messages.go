package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "maximum at %s",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"clock":         "must be a 24-hour time in HH:MM format",
	"weekday":       "must be a weekday name such as Monday",
	"slot_duration": "must be one of [15, 30, 45, 60] minutes",
	"iso_date":      "must be a date in YYYY-MM-DD format",
	"slot_time":     "must be a time such as 10:30 AM or 10:30",
	"gtfield":       "must be later than %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"gt":      true,
	"gte":     true,
	"lt":      true,
	"lte":     true,
	"oneof":   true,
	"gtfield": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientActiveAppointmentExists = "you already have an active appointment, cancel it before booking a new one"
	ErrClientSlotAlreadyBooked       = "this slot has just been booked, please pick another slot"
	ErrClientSlotUnavailable         = "this slot is not available for booking"
	ErrClientDoctorUnavailable       = "this doctor is not available for booking"
	ErrClientAccountNotVerified      = "please verify your account before booking an appointment"
	ErrClientAccountBannedFormat     = "your account is banned: %s"
	ErrClientAccountBanned           = "your account is banned"
	ErrClientAppointmentCompleted    = "this appointment is already completed"
	ErrClientAppointmentCancelled    = "this appointment is already cancelled"
	ErrClientBookingBusy             = "the doctor is receiving many bookings right now, please try again"
	ErrClientScheduleInvalidWindow   = "start time must be earlier than end time"
)

// Error messages for developers
const (
	ErrDevInvalidInput          = "invalid input"
	ErrDevCannotParseJSON       = "cannot parse JSON"
	ErrDevCannotMarshalJSON     = "cannot marshal JSON"
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"
	ErrDevServerProcess         = "server failed to process the request"

	ErrDevURLParamIDValidationFailed = "URL param %s validation failed"

	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthRoleNotAllowed        = "role %s is not allowed to access this route"
	ErrDevServerDeadlineExceeded    = "deadline exceeded"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisGetNoData  = "no data found on redis for key %s"
	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisSetNX      = "failed to set data if not exists into redis"
	ErrDevRedisExpire     = "failed to set expiry on redis key"
	ErrDevRedisUnlock     = "failed to release redis lock"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	ErrDevActiveAppointmentExists = "user %s already holds active appointment"
	ErrDevSlotAlreadyBooked       = "slot %s at minute %d already booked for doctor %s"
	ErrDevSlotUnavailable         = "slot %s at minute %d is outside the bookable window of doctor %s"
	ErrDevAccountNotFound         = "user account %s not found"
	ErrDevAccountNotVerified      = "user account %s not verified"
	ErrDevAccountBanned           = "user account %s banned"
	ErrDevDoctorNotFound          = "doctor %s not found"
	ErrDevDoctorUnavailable       = "doctor %s is marked unavailable"
	ErrDevScheduleNotFound        = "schedule %s not found"
	ErrDevScheduleNotOwned        = "schedule %s not owned by doctor %s"
	ErrDevScheduleInvalidWindow   = "schedule window start %s is not before end %s"
	ErrDevAppointmentNotFound     = "appointment %s not found"
	ErrDevAppointmentNotOwned     = "appointment %s not owned by actor %s"
	ErrDevAppointmentCompleted    = "appointment %s already completed"
	ErrDevAppointmentCancelled    = "appointment %s already cancelled"
	ErrDevBookingLockNotAcquired  = "booking lock for doctor %s not acquired"
	ErrDevRateLimited             = "request rate limit exceeded"
)

// Machine readable error codes
const (
	ErrCodeActiveAppointmentExists = "ACTIVE_APPOINTMENT_EXISTS"
	ErrCodeSlotAlreadyBooked       = "SLOT_ALREADY_BOOKED"
	ErrCodeSlotUnavailable         = "SLOT_UNAVAILABLE"
	ErrCodeDoctorUnavailable       = "DOCTOR_UNAVAILABLE"
	ErrCodeAccountBanned           = "ACCOUNT_BANNED"
	ErrCodeNotVerified             = "NOT_VERIFIED"
	ErrCodeUnauthorized            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeAppointmentCompleted    = "APPOINTMENT_COMPLETED"
	ErrCodeAppointmentCancelled    = "APPOINTMENT_CANCELLED"
	ErrCodeBookingBusy             = "BOOKING_BUSY"
	ErrCodeValidation              = "VALIDATION_FAILED"
	ErrCodeInternal                = "INTERNAL_ERROR"
	ErrCodeTooManyRequests         = "TOO_MANY_REQUESTS"
)
