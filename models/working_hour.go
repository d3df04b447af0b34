package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WorkingHour is one recurring slot in a doctor's weekly template. A doctor
// may have any number of slots per weekday; rows are not required to be
// sorted or disjoint in storage, the availability resolver normalizes them.
type WorkingHour struct {
	gorm.Model
	DoctorID    uint      `json:"doctor_id"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}
