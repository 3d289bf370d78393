package constvars

const (
	URLParamDoctorID      = "doctorId"
	URLParamScheduleID    = "scheduleId"
	URLParamAppointmentID = "appointmentId"
)
