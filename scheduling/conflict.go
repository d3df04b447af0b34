package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicore/clinic-backend/models"
)

// lockDoctor takes a row lock on the doctor inside the current transaction.
// All bookings for one doctor serialize on this lock: two transactions racing
// for a free slot cannot both pass the conflict scan, because the second
// blocks here until the first commits and then sees its insert. Returns
// NotFound when the doctor does not exist.
func lockDoctor(tx *gorm.DB, doctorID uint) error {
	var doctor models.Doctor
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").First(&doctor, doctorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Doctor not found")
	}
	return err
}

// lockAppointment loads the appointment under a row lock so concurrent
// mutations observe each other's committed status instead of a stale read.
// Lock order is always appointment before doctor.
func lockAppointment(tx *gorm.DB, appt *models.Appointment, id uint) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Appointment not found")
	}
	return err
}

// HasConflict reports whether the doctor already has a non-cancelled
// appointment overlapping [start, end). excludeID, when non-zero, is left out
// of the scan so an appointment never conflicts with itself during an update.
//
// Overlapping rows that exist are locked (FOR UPDATE). The scan alone cannot
// serialize bookings for a free slot, where there is no row to lock; callers
// must hold the doctor lock (lockDoctor) in the same transaction first.
func HasConflict(db *gorm.DB, doctorID uint, start, end time.Time, excludeID uint) (bool, error) {
	var conflict models.Appointment
	err := db.Raw(`
		SELECT id
		FROM appointments
		WHERE doctor_id = ?
		  AND id <> ?
		  AND status <> ?
		  AND deleted_at IS NULL
		  AND start_time < ? AND end_time > ?
		LIMIT 1
		FOR UPDATE
	`, doctorID, excludeID, models.StatusCancelled, end, start).
		Scan(&conflict).Error
	if err != nil {
		return false, err
	}
	return conflict.ID != 0, nil
}

// OverlapsAny reports whether [start, end) intersects any of the booked
// appointments.
func OverlapsAny(booked []models.Appointment, start, end time.Time) bool {
	for _, appt := range booked {
		if Overlaps(start, end, appt.StartTime, appt.EndTime) {
			return true
		}
	}
	return false
}
