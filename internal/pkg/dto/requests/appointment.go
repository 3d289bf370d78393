package requests

type BookAppointment struct {
	DoctorID string `json:"doctorId" validate:"required"`
	SlotDate string `json:"slotDate" validate:"required,iso_date"`
	SlotTime string `json:"slotTime" validate:"required,slot_time"`
}
