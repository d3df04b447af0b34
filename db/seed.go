package db

import (
	"log"

	"github.com/clinicore/clinic-backend/models"
)

// Seed creates the clinic roles and their permission grants if they do not
// exist yet. Safe to run on every startup.
func Seed() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleDoctor, Description: "Doctor managing their own appointments and working hours"},
		{Name: models.RoleNurse, Description: "Nurse assigned to appointments"},
		{Name: models.RoleSecretary, Description: "Front desk staff managing doctors' calendars"},
		{Name: models.RolePatient, Description: "Patient booking appointments"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	permissions := []models.Permission{
		{Name: "create_appointment", Description: "Book appointments", Resource: "appointments", Action: "create"},
		{Name: "read_appointments", Description: "View appointments", Resource: "appointments", Action: "read"},
		{Name: "update_appointment", Description: "Reschedule or edit appointments", Resource: "appointments", Action: "update"},
		{Name: "update_appointment_status", Description: "Transition appointment status", Resource: "appointments", Action: "update-status"},
		{Name: "cancel_appointment", Description: "Cancel appointments", Resource: "appointments", Action: "cancel"},

		{Name: "read_availability", Description: "View doctor availability", Resource: "availability", Action: "read"},
		{Name: "update_working_hours", Description: "Update working-hours template", Resource: "working-hours", Action: "update"},

		{Name: "read_users", Description: "View user list", Resource: "users", Action: "read"},
		{Name: "update_user", Description: "Update user details", Resource: "users", Action: "update"},

		{Name: "read_notifications", Description: "View notifications", Resource: "notifications", Action: "read"},
		{Name: "update_notification", Description: "Mark notifications read", Resource: "notifications", Action: "update"},

		{Name: "create_role", Description: "Create roles", Resource: "roles", Action: "create"},
		{Name: "read_roles", Description: "View roles", Resource: "roles", Action: "read"},
		{Name: "update_role", Description: "Update roles", Resource: "roles", Action: "update"},
	}
	for _, permission := range permissions {
		var existing models.Permission
		if DB.Where("name = ?", permission.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&permission)
		}
	}

	grants := map[string][]string{
		models.RoleAdmin: {
			"create_appointment", "read_appointments", "update_appointment",
			"update_appointment_status", "cancel_appointment", "read_availability",
			"update_working_hours", "read_users", "update_user",
			"read_notifications", "update_notification",
			"create_role", "read_roles", "update_role",
		},
		models.RoleDoctor: {
			"read_appointments", "update_appointment_status",
			"read_availability", "update_working_hours", "read_notifications", "update_notification",
		},
		models.RoleNurse: {
			"read_appointments", "read_availability", "read_notifications", "update_notification",
		},
		models.RoleSecretary: {
			"create_appointment", "read_appointments", "update_appointment",
			"read_availability", "read_users", "read_notifications", "update_notification",
		},
		models.RolePatient: {
			"create_appointment", "read_appointments", "cancel_appointment",
			"read_availability", "read_notifications", "update_notification",
		},
	}
	for roleName, permNames := range grants {
		var role models.Role
		if DB.Where("name = ?", roleName).First(&role).RowsAffected == 0 {
			continue
		}
		var perms []models.Permission
		DB.Where("name IN ?", permNames).Find(&perms)
		if err := DB.Model(&role).Association("Permissions").Replace(perms); err != nil {
			log.Printf("Failed to assign permissions to role %s: %v", roleName, err)
		}
	}

	log.Println("✅ Roles and permissions seeded")
}
