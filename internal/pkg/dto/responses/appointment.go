package responses

import "time"

type Appointment struct {
	ID           string      `json:"id"`
	DoctorID     string      `json:"doctorId"`
	UserID       string      `json:"userId"`
	SlotDate     string      `json:"slotDate"`
	SlotDateKey  string      `json:"slotDateKey"`
	SlotTime     string      `json:"slotTime"`
	SlotStart    time.Time   `json:"slotStart"`
	SlotDuration int         `json:"slotDuration"`
	Cancelled    bool        `json:"cancelled"`
	IsCompleted  bool        `json:"isCompleted"`
	CancelReason string      `json:"cancelReason,omitempty"`
	Amount       float64     `json:"amount"`
	DocData      DoctorBrief `json:"docData"`
	UserData     UserBrief   `json:"userData"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type DoctorBrief struct {
	Name       string `json:"name"`
	Speciality string `json:"speciality,omitempty"`
	Image      string `json:"image,omitempty"`
}

type UserBrief struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

type ActiveAppointment struct {
	HasActive   bool         `json:"hasActive"`
	Appointment *Appointment `json:"appointment,omitempty"`
}
