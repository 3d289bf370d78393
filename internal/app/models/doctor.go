package models

import "slices"

type Doctor struct {
	ID          string      `bson:"_id,omitempty"`
	Name        string      `bson:"name"`
	Speciality  string      `bson:"speciality"`
	Image       string      `bson:"image"`
	Fees        float64     `bson:"fees"`
	Available   bool        `bson:"available"`
	SlotsBooked BookedIndex `bson:"slotsBooked,omitempty"`
}

// BookedIndex maps an ISO date (YYYY-MM-DD) to the booked slot starts of that day,
// as minutes since midnight.
type BookedIndex map[string][]int

func (b BookedIndex) Has(date string, minutes int) bool {
	if b == nil {
		return false
	}
	return slices.Contains(b[date], minutes)
}

// Add marks the slot booked and reports whether it was free before.
func (b BookedIndex) Add(date string, minutes int) bool {
	if b.Has(date, minutes) {
		return false
	}
	b[date] = append(b[date], minutes)
	return true
}

func (b BookedIndex) Remove(date string, minutes int) {
	day, ok := b[date]
	if !ok {
		return
	}
	day = slices.DeleteFunc(day, func(m int) bool { return m == minutes })
	if len(day) == 0 {
		delete(b, date)
		return
	}
	b[date] = day
}
