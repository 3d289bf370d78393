package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	// Schedule messages
	GetSchedulesSuccessMessage      = "get schedules successfully"
	UpsertScheduleSuccessMessage    = "schedule saved successfully"
	DeleteScheduleSuccessMessage    = "schedule deleted successfully"
	ToggleScheduleSuccessMessage    = "schedule status updated successfully"
	GetAvailableSlotsSuccessMessage = "get available slots successfully"

	// Appointment messages
	BookAppointmentSuccessMessage        = "appointment booked successfully"
	CancelAppointmentSuccessMessage      = "appointment cancelled successfully"
	CompleteAppointmentSuccessMessage    = "appointment completed successfully"
	GetAppointmentsSuccessMessage        = "get appointments successfully"
	GetActiveAppointmentSuccessMessage   = "get active appointment successfully"
	GetNoActiveAppointmentSuccessMessage = "no active appointment"
)
