package config

import "time"

type InternalConfig struct {
	App        App
	JWT        AppJWT
	Scheduling Scheduling
	RabbitMQ   AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             string
	MaxRequests                int
	ShutdownTimeout            int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	// BookingMaxRequestsPerMinute caps POST /appointments per caller.
	BookingMaxRequestsPerMinute int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

// Scheduling holds the knobs of the booking and expiry flows.
type Scheduling struct {
	// FreeSlotOnCancel removes the slot from the doctor's booked index when an
	// appointment is cancelled or expires. Off by default, which keeps the slot blocked.
	FreeSlotOnCancel bool
	// AppointmentExpiryGraceInMinutes delays auto expiry past the slot start.
	AppointmentExpiryGraceInMinutes int
	ExpiryWorkerCronSpec            string
	ExpiryWorkerLockTTLInSeconds    int
	BookingLockTTLInSeconds         int
	BookingLockRetryCount           int
	BookingLockRetryDelayInMillis   int
	ScheduleCacheTTLInSeconds       int
}

type AppRabbitMQ struct {
	NotificationQueue string
}

func (s Scheduling) ExpiryGrace() time.Duration {
	return time.Duration(s.AppointmentExpiryGraceInMinutes) * time.Minute
}

func (s Scheduling) BookingLockTTL() time.Duration {
	if s.BookingLockTTLInSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.BookingLockTTLInSeconds) * time.Second
}

func (s Scheduling) BookingLockRetryDelay() time.Duration {
	return time.Duration(s.BookingLockRetryDelayInMillis) * time.Millisecond
}

func (s Scheduling) ExpiryWorkerLockTTL() time.Duration {
	if s.ExpiryWorkerLockTTLInSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.ExpiryWorkerLockTTLInSeconds) * time.Second
}

func (s Scheduling) ScheduleCacheTTL() time.Duration {
	return time.Duration(s.ScheduleCacheTTLInSeconds) * time.Second
}
