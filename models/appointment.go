package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// Appointment is never hard-deleted; cancellation is a status transition.
type Appointment struct {
	gorm.Model
	DoctorID    uint              `json:"doctor_id" gorm:"index:idx_doctor_time"`
	Doctor      Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID   uint              `json:"patient_id" gorm:"index"`
	Patient     Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	NurseID     *uint             `json:"nurse_id"`
	SecretaryID *uint             `json:"secretary_id"`
	StartTime   time.Time         `json:"start_time" gorm:"index:idx_doctor_time"`
	EndTime     time.Time         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason"`
	Notes       string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}
