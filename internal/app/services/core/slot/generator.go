package slot

import (
	"strings"
	"time"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/utils"
)

var fallbackWindow = window{
	Start:    constvars.FallbackWindowStartMinutes,
	End:      constvars.FallbackWindowEndMinutes,
	Step:     constvars.FallbackSlotDuration,
	Fallback: true,
}

// Generate produces one Day per calendar day starting at in.Now's date. Each day uses
// the doctor's active schedule for that weekday, or the default 10:00-21:00 window
// with 30 minute slots when there is none. Slots already in in.Booked and slots that
// start before in.Now are left out.
func Generate(in GenerateInput) []Day {
	days := in.Days
	if days <= 0 {
		days = constvars.SlotGenerationDays
	}

	today := utils.StartOfDay(in.Now)
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		y, m, d := today.Date()
		date := time.Date(y, m, d+i, 0, 0, 0, 0, today.Location())
		weekday := constvars.Weekdays[date.Weekday()]
		w := resolveWindow(in.Schedules, weekday)

		isoDate := utils.ISODate(date)
		dateKey := utils.LegacyDateKey(date)
		slots := make([]Candidate, 0)
		for minutes := firstSlot(w, date, in.Now); minutes < w.End; minutes += w.Step {
			if in.Booked.Has(isoDate, minutes) {
				continue
			}
			slots = append(slots, Candidate{
				Datetime: utils.AtMinutes(date, minutes),
				Time:     utils.FormatTimeLabel(minutes),
				Date:     isoDate,
				DateKey:  dateKey,
				Minutes:  minutes,
			})
		}

		out = append(out, Day{
			Date:     date,
			Weekday:  weekday,
			Fallback: w.Fallback,
			Slots:    slots,
		})
	}
	return out
}

// IsBookable reports whether the generator could offer the slot starting at minutes
// on date, ignoring the booked index.
func IsBookable(schedules []models.WeeklySchedule, date time.Time, minutes int, now time.Time) bool {
	today := utils.StartOfDay(now)
	day := utils.StartOfDay(date.In(now.Location()))
	if day.Before(today) || !day.Before(today.AddDate(0, 0, constvars.SlotGenerationDays)) {
		return false
	}
	if !utils.IsValidMinuteOfDay(minutes) {
		return false
	}

	w := resolveWindow(schedules, constvars.Weekdays[day.Weekday()])
	if !w.contains(minutes) {
		return false
	}
	return !utils.AtMinutes(day, minutes).Before(now)
}

// SlotDuration returns the slot length in minutes that applies on date's weekday.
func SlotDuration(schedules []models.WeeklySchedule, date time.Time) int {
	return resolveWindow(schedules, constvars.Weekdays[date.Weekday()]).Step
}

func resolveWindow(schedules []models.WeeklySchedule, weekday string) window {
	for _, s := range schedules {
		if !s.IsActive || !strings.EqualFold(s.DayOfWeek, weekday) {
			continue
		}
		start, end, ok := s.Window()
		if !ok {
			continue
		}
		return window{Start: start, End: end, Step: s.SlotDuration}
	}
	return fallbackWindow
}

// firstSlot returns the window start, or when that already lies before now, the next
// slot boundary at or after now counted from the window start.
func firstSlot(w window, date, now time.Time) int {
	start := utils.AtMinutes(date, w.Start)
	if !start.Before(now) {
		return w.Start
	}
	step := time.Duration(w.Step) * time.Minute
	elapsed := now.Sub(start)
	steps := int((elapsed + step - 1) / step)
	return w.Start + steps*w.Step
}

// ToResponse maps generated days to their presentation form.
func ToResponse(days []Day) []responses.DaySlots {
	out := make([]responses.DaySlots, 0, len(days))
	for _, day := range days {
		slots := make([]responses.CandidateSlot, 0, len(day.Slots))
		for _, c := range day.Slots {
			slots = append(slots, responses.CandidateSlot{
				Datetime: c.Datetime,
				Time:     c.Time,
				Date:     c.Date,
				DateKey:  c.DateKey,
				Minutes:  c.Minutes,
			})
		}
		out = append(out, responses.DaySlots{
			Date:      utils.ISODate(day.Date),
			DateKey:   utils.LegacyDateKey(day.Date),
			DayOfWeek: day.Weekday,
			Fallback:  day.Fallback,
			Slots:     slots,
		})
	}
	return out
}
