package utils

import (
	"os"
	"sync"
	"time"
)

var (
	clinicLoc  *time.Location
	clinicOnce sync.Once
)

// ClinicLocation returns the timezone the clinic operates in. Date strings
// ("YYYY-MM-DD") and working-hour times ("HH:MM") are always interpreted in
// this location so weekday resolution never shifts across the UTC boundary.
// Configured via CLINIC_TIMEZONE, defaults to UTC.
func ClinicLocation() *time.Location {
	clinicOnce.Do(func() {
		name := os.Getenv("CLINIC_TIMEZONE")
		if name == "" {
			clinicLoc = time.UTC
			return
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			clinicLoc = time.UTC // Fallback to UTC if the zone is unknown
			return
		}
		clinicLoc = loc
	})
	return clinicLoc
}
