package models

import "time"

type Appointment struct {
	ID           string         `bson:"_id,omitempty"`
	DoctorID     string         `bson:"doctorId"`
	UserID       string         `bson:"userId"`
	SlotDate     string         `bson:"slotDate"`
	SlotMinutes  int            `bson:"slotMinutes"`
	SlotTime     string         `bson:"slotTime"`
	SlotStart    time.Time      `bson:"slotStart"`
	SlotDuration int            `bson:"slotDuration"`
	Cancelled    bool           `bson:"cancelled"`
	IsCompleted  bool           `bson:"isCompleted"`
	CancelReason string         `bson:"cancelReason,omitempty"`
	CancelledAt  *time.Time     `bson:"cancelledAt,omitempty"`
	CompletedAt  *time.Time     `bson:"completedAt,omitempty"`
	Amount       float64        `bson:"amount"`
	DocData      DoctorSnapshot `bson:"docData"`
	UserData     UserSnapshot   `bson:"userData"`
	CreatedAt    time.Time      `bson:"createdAt"`
}

type DoctorSnapshot struct {
	Name       string `bson:"name"`
	Speciality string `bson:"speciality"`
	Image      string `bson:"image"`
}

type UserSnapshot struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Image string `bson:"image"`
}

// IsActive reports whether the appointment is neither cancelled nor completed.
func (a Appointment) IsActive() bool {
	return !a.Cancelled && !a.IsCompleted
}

// IsExpired reports whether an active appointment's start (plus grace) has passed.
func (a Appointment) IsExpired(now time.Time, grace time.Duration) bool {
	return a.IsActive() && !now.Before(a.SlotStart.Add(grace))
}
