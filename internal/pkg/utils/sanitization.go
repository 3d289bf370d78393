package utils

import (
	"strings"
	"unicode"
	"vetcare-service/internal/pkg/dto/requests"
)

func capitalize(input string) string {
	if len(input) == 0 {
		return input
	}
	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func SanitizeUpsertScheduleRequest(input *requests.UpsertSchedule) {
	input.DayOfWeek = capitalize(strings.TrimSpace(input.DayOfWeek))
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
}

func SanitizeBookAppointmentRequest(input *requests.BookAppointment) {
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.SlotDate = strings.TrimSpace(input.SlotDate)
	input.SlotTime = strings.ToUpper(strings.Join(strings.Fields(input.SlotTime), " "))
}
