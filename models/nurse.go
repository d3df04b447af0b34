package models

import (
	"gorm.io/gorm"
)

type Nurse struct {
	gorm.Model
	UserID           uint  `json:"user_id" gorm:"uniqueIndex"`
	User             User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AssignedDoctorID *uint `json:"assigned_doctor_id"`
}
