package models

import "vetcare-service/internal/pkg/utils"

// WeeklySchedule is a doctor's recurring availability window for one weekday.
type WeeklySchedule struct {
	ID           string `bson:"_id,omitempty"`
	DoctorID     string `bson:"doctorId"`
	DayOfWeek    string `bson:"dayOfWeek"`
	StartTime    string `bson:"startTime"`
	EndTime      string `bson:"endTime"`
	SlotDuration int    `bson:"slotDuration"`
	IsActive     bool   `bson:"isActive"`
	TimeModel    `bson:",inline"`
}

// Window returns the schedule bounds as minutes since midnight. ok is false when
// the stored clocks are malformed or do not form a non-empty window.
func (s WeeklySchedule) Window() (start, end int, ok bool) {
	start, ok1 := utils.ParseClock(s.StartTime)
	end, ok2 := utils.ParseClock(s.EndTime)
	if !ok1 || !ok2 || start >= end || s.SlotDuration <= 0 {
		return 0, 0, false
	}
	return start, end, true
}
