package slot

import (
	"time"
	"vetcare-service/internal/app/models"
)

// GenerateInput is everything the generator depends on. It holds no clock of its
// own so results are reproducible for a fixed Now.
type GenerateInput struct {
	Schedules []models.WeeklySchedule
	Booked    models.BookedIndex
	Now       time.Time
	// Days defaults to constvars.SlotGenerationDays when zero.
	Days int
}

// Candidate is one bookable slot start.
type Candidate struct {
	Datetime time.Time
	Time     string
	Date     string
	DateKey  string
	Minutes  int
}

// Day lists the candidates of one calendar day. Slots may be empty.
type Day struct {
	Date     time.Time
	Weekday  string
	Fallback bool
	Slots    []Candidate
}

// window is a resolved availability window in minutes since midnight.
type window struct {
	Start    int
	End      int
	Step     int
	Fallback bool
}

// contains reports whether minutes is a slot boundary inside the window.
func (w window) contains(minutes int) bool {
	if minutes < w.Start || minutes >= w.End {
		return false
	}
	return (minutes-w.Start)%w.Step == 0
}
