package requests

import "time"

// AppointmentNotification is the message handed to the notification queue on every
// appointment state change.
type AppointmentNotification struct {
	Event         string    `json:"event"`
	AppointmentID string    `json:"appointmentId"`
	UserID        string    `json:"userId"`
	DoctorID      string    `json:"doctorId"`
	SlotDate      string    `json:"slotDate"`
	SlotTime      string    `json:"slotTime"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurredAt"`
}
