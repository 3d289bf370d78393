package constvars

const (
	MongoCollectionWeeklySchedules = "weekly_schedules"
	MongoCollectionDoctors         = "doctors"
	MongoCollectionUsers           = "users"
	MongoCollectionAppointments    = "appointments"
)

const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
)

const (
	RedisKeyBookingLockDoctorFormat = "booking:lock:doctor:%s"
	RedisKeyExpiryWorkerLeader      = "appointment:expiry:leader"
	RedisKeySchedulesCacheFormat    = "schedules:doctor:%s"
)

const (
	NotificationEventAppointmentBooked    = "appointment.booked"
	NotificationEventAppointmentCancelled = "appointment.cancelled"
	NotificationEventAppointmentExpired   = "appointment.expired"
	NotificationEventAppointmentCompleted = "appointment.completed"
)
