package models

import (
	"gorm.io/gorm"
)

// Secretary manages the calendars of one or more doctors. The managed set
// bounds which appointments the secretary may see or mutate.
type Secretary struct {
	gorm.Model
	UserID         uint     `json:"user_id" gorm:"uniqueIndex"`
	User           User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ManagedDoctors []Doctor `json:"managed_doctors,omitempty" gorm:"many2many:secretary_doctors;"`
}
