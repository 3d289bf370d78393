package responses

import "time"

type WeeklySchedule struct {
	ID           string    `json:"id"`
	DoctorID     string    `json:"doctorId"`
	DayOfWeek    string    `json:"dayOfWeek"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	SlotDuration int       `json:"slotDuration"`
	IsActive     bool      `json:"isActive"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CandidateSlot struct {
	Datetime time.Time `json:"datetime"`
	Time     string    `json:"time"`
	Date     string    `json:"date"`
	DateKey  string    `json:"dateKey"`
	Minutes  int       `json:"minutes"`
}

type DaySlots struct {
	Date      string          `json:"date"`
	DateKey   string          `json:"dateKey"`
	DayOfWeek string          `json:"dayOfWeek"`
	Fallback  bool            `json:"fallback"`
	Slots     []CandidateSlot `json:"slots"`
}
