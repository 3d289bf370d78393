package requests

type UpsertSchedule struct {
	DayOfWeek    string `json:"dayOfWeek" validate:"required,weekday"`
	StartTime    string `json:"startTime" validate:"required,clock"`
	EndTime      string `json:"endTime" validate:"required,clock"`
	SlotDuration int    `json:"slotDuration" validate:"required,slot_duration"`
}
