package models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex"`
	User              User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	InsuranceNumber   string     `json:"insurance_number"`
	EmergencyName     string     `json:"emergency_name"`
	EmergencyPhone    string     `json:"emergency_phone"`
	EmergencyRelation string     `json:"emergency_relation"`
	Allergies         StringList `json:"allergies" gorm:"type:jsonb"`
	AssignedDoctorID  *uint      `json:"assigned_doctor_id"`
	Consent           bool       `json:"consent" gorm:"default:true"`
}
