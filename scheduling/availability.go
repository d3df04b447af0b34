package scheduling

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/models"
)

// SlotWindow is one free interval in a doctor's day.
type SlotWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayAvailability is the result of resolving a doctor's schedule for one date.
type DayAvailability struct {
	Date      string       `json:"date"`
	DayOfWeek string       `json:"day_of_week"`
	Available bool         `json:"available"`
	Slots     []SlotWindow `json:"available_slots"`
}

// ResolveAvailability computes the free windows for a doctor on a calendar
// date: the recurring weekly template for that weekday, minus every interval
// covered by a non-cancelled appointment. A date with no template, or a
// malformed date, yields "not available this day" rather than an error.
func ResolveAvailability(db *gorm.DB, doctorID uint, date string, loc *time.Location) (*DayAvailability, error) {
	var doctor models.Doctor
	if err := db.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Doctor not found")
		}
		return nil, err
	}

	result := &DayAvailability{Date: date, Slots: []SlotWindow{}}

	dayStart, dayEnd, err := DayBounds(date, loc)
	if err != nil {
		return result, nil
	}
	weekday := dayStart.Weekday()
	result.DayOfWeek = weekday.String()

	var template []models.WorkingHour
	if err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, int(weekday)).
		Find(&template).Error; err != nil {
		return nil, err
	}
	if len(template) == 0 {
		return result, nil
	}

	var booked []models.Appointment
	if err := db.Where(
		"doctor_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
		doctorID, models.StatusCancelled, dayEnd, dayStart,
	).Find(&booked).Error; err != nil {
		return nil, err
	}

	result.Slots = FreeWindows(template, booked, date, loc)
	result.Available = len(result.Slots) > 0
	return result, nil
}

// FreeWindows applies the day template against the booked appointments and
// returns the free windows as a minimal disjoint set: slots are sorted by
// start and overlapping or adjacent free windows are merged. Template rows
// with IsAvailable=false and rows with malformed times are skipped.
func FreeWindows(template []models.WorkingHour, booked []models.Appointment, date string, loc *time.Location) []SlotWindow {
	free := []SlotWindow{}
	for _, slot := range template {
		if !slot.IsAvailable {
			continue
		}
		slotStart, err := CombineDateTime(date, slot.StartTime, loc)
		if err != nil {
			continue
		}
		slotEnd, err := CombineDateTime(date, slot.EndTime, loc)
		if err != nil || !slotEnd.After(slotStart) {
			continue
		}
		if OverlapsAny(booked, slotStart, slotEnd) {
			continue
		}
		free = append(free, SlotWindow{Start: slotStart, End: slotEnd})
	}
	return mergeWindows(free)
}

func mergeWindows(windows []SlotWindow) []SlotWindow {
	if len(windows) < 2 {
		return windows
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	merged := windows[:1]
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
