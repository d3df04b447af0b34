package scheduling

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/models"
)

// transitions is the appointment state machine. Cancelled and completed are
// terminal; nothing transitions out of them.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted, models.StatusNoShow},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation error for illegal transitions.
func ValidateTransition(from, to models.AppointmentStatus) error {
	if !CanTransition(from, to) {
		return Invalid(fmt.Sprintf("invalid status transition from %s to %s", from, to))
	}
	return nil
}

func validStatus(s models.AppointmentStatus) bool {
	switch s {
	case models.StatusScheduled, models.StatusInProgress, models.StatusCompleted,
		models.StatusCancelled, models.StatusNoShow:
		return true
	}
	return false
}

// CreateInput carries a booking request. Patient identity is taken from the
// actor for patient self-service; PatientID from the body is honored only for
// secretary proxy-booking and shared/admin endpoints.
type CreateInput struct {
	DoctorID  uint
	PatientID uint
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	Notes     string
}

// CreateAppointment validates the request, re-checks the conflict inside the
// insert transaction and persists the appointment with status scheduled. The
// creator's role decides which of patient/secretary/nurse is stamped.
func CreateAppointment(db *gorm.DB, in CreateInput, actor Actor) (*models.Appointment, error) {
	if !in.EndTime.After(in.StartTime) {
		return nil, Invalid("endTime must be after startTime")
	}

	var doctor models.Doctor
	if err := db.First(&doctor, in.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Doctor not found")
		}
		return nil, err
	}

	appt := &models.Appointment{
		DoctorID:  in.DoctorID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    in.Reason,
		Notes:     in.Notes,
		Status:    models.StatusScheduled,
	}

	switch actor.Role {
	case models.RolePatient:
		appt.PatientID = actor.ProfileID
	case models.RoleSecretary:
		if !actor.Manages(in.DoctorID) {
			return nil, Forbidden("You do not manage this doctor")
		}
		appt.PatientID = in.PatientID
		secretaryID := actor.ProfileID
		appt.SecretaryID = &secretaryID
	case models.RoleNurse:
		appt.PatientID = in.PatientID
		nurseID := actor.ProfileID
		appt.NurseID = &nurseID
	default:
		appt.PatientID = in.PatientID
	}

	if appt.PatientID == 0 {
		return nil, Invalid("patientId is required")
	}
	if actor.Role != models.RolePatient {
		var patient models.Patient
		if err := db.First(&patient, appt.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFound("Patient not found")
			}
			return nil, err
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// The doctor lock serializes concurrent bookings; without it two
		// transactions targeting a free slot would both scan zero rows and
		// both insert.
		if err := lockDoctor(tx, in.DoctorID); err != nil {
			return err
		}
		conflict, err := HasConflict(tx, in.DoctorID, in.StartTime, in.EndTime, 0)
		if err != nil {
			return err
		}
		if conflict {
			return Conflict("The doctor has another appointment during this time slot")
		}
		return tx.Create(appt).Error
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// UpdateStatus transitions an appointment through the state machine. Only the
// owning doctor, or an admin override, may do so. The row is locked for the
// whole load-validate-save sequence so a concurrent mutation cannot slip a
// transition past a stale read of the old status.
func UpdateStatus(db *gorm.DB, apptID uint, newStatus models.AppointmentStatus, actor Actor) (*models.Appointment, error) {
	if !validStatus(newStatus) {
		return nil, Invalid(fmt.Sprintf("unknown status %q", newStatus))
	}

	var appt models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockAppointment(tx, &appt, apptID); err != nil {
			return err
		}
		if !ScopeFilter(actor).Allows(&appt) {
			return Forbidden("Appointment is outside your scope")
		}
		if err := ValidateTransition(appt.Status, newStatus); err != nil {
			return err
		}
		appt.Status = newStatus
		return tx.Save(&appt).Error
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// CancelAppointment is the patient path: only the owning patient, and only
// while the appointment is still scheduled. The record is never deleted.
// Under the row lock, the second of two racing cancels reads the committed
// cancelled status and fails the transition check.
func CancelAppointment(db *gorm.DB, apptID uint, actor Actor) (*models.Appointment, error) {
	var appt models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockAppointment(tx, &appt, apptID); err != nil {
			return err
		}
		if !ScopeFilter(actor).Allows(&appt) {
			return Forbidden("Appointment is outside your scope")
		}
		if err := ValidateTransition(appt.Status, models.StatusCancelled); err != nil {
			return err
		}
		appt.Status = models.StatusCancelled
		return tx.Save(&appt).Error
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateInput is the secretary reassignment path. Nil fields are left
// untouched.
type UpdateInput struct {
	DoctorID  *uint
	NurseID   *uint
	StartTime *time.Time
	EndTime   *time.Time
	Status    *models.AppointmentStatus
	Reason    *string
	Notes     *string
}

// UpdateAppointment applies a secretary (or admin) update. The appointment
// row is locked for the whole sequence; whenever the doctor or the time
// window changes, the target doctor is locked too and the conflict check
// re-runs against the merged doctor/times with the appointment itself
// excluded. On conflict the transaction rolls back and the stored record is
// untouched.
func UpdateAppointment(db *gorm.DB, apptID uint, in UpdateInput, actor Actor) (*models.Appointment, error) {
	var appt models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockAppointment(tx, &appt, apptID); err != nil {
			return err
		}
		if !ScopeFilter(actor).Allows(&appt) {
			return Forbidden("Appointment is outside your scope")
		}

		newDoctor := appt.DoctorID
		if in.DoctorID != nil {
			newDoctor = *in.DoctorID
		}
		newStart := appt.StartTime
		if in.StartTime != nil {
			newStart = *in.StartTime
		}
		newEnd := appt.EndTime
		if in.EndTime != nil {
			newEnd = *in.EndTime
		}
		if !newEnd.After(newStart) {
			return Invalid("endTime must be after startTime")
		}

		if newDoctor != appt.DoctorID &&
			actor.Role == models.RoleSecretary && !actor.Manages(newDoctor) {
			return Forbidden("You do not manage this doctor")
		}

		if in.Status != nil && *in.Status != appt.Status {
			if !validStatus(*in.Status) {
				return Invalid(fmt.Sprintf("unknown status %q", *in.Status))
			}
			if err := ValidateTransition(appt.Status, *in.Status); err != nil {
				return err
			}
		}

		rescheduled := newDoctor != appt.DoctorID ||
			!newStart.Equal(appt.StartTime) || !newEnd.Equal(appt.EndTime)
		if rescheduled {
			// Verifies the target doctor exists and serializes against
			// concurrent bookings for the same doctor.
			if err := lockDoctor(tx, newDoctor); err != nil {
				return err
			}
			conflict, err := HasConflict(tx, newDoctor, newStart, newEnd, appt.ID)
			if err != nil {
				return err
			}
			if conflict {
				return Conflict("The doctor has another appointment during this time slot")
			}
		}

		appt.DoctorID = newDoctor
		appt.StartTime = newStart
		appt.EndTime = newEnd
		if in.NurseID != nil {
			appt.NurseID = in.NurseID
		}
		if in.Status != nil {
			appt.Status = *in.Status
		}
		if in.Reason != nil {
			appt.Reason = *in.Reason
		}
		if in.Notes != nil {
			appt.Notes = *in.Notes
		}
		return tx.Save(&appt).Error
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}
