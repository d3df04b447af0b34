package models

import (
	"time"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email" gorm:"unique"`
	Password   string    `json:"password,omitempty"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Avatar     string    `json:"avatar"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	IsVerified bool      `json:"is_verified"`
	RoleID     uint      `json:"role_id"`
	Role       Role      `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName is used in notification emails.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
