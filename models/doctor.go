package models

import (
	"gorm.io/gorm"
)

// Doctor is the role-specific profile, distinct from the user account. It
// carries the specialty and the recurring weekly working-hours template.
type Doctor struct {
	gorm.Model
	UserID       uint          `json:"user_id" gorm:"uniqueIndex"`
	User         User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialty    string        `json:"specialty"`
	NurseID      *uint         `json:"nurse_id"`
	WorkingHours []WorkingHour `json:"working_hours,omitempty" gorm:"foreignKey:DoctorID"`
}
