package db

import (
	"fmt"
	"log"

	"github.com/clinicore/clinic-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Doctor{},
		&models.WorkingHour{},
		&models.Patient{},
		&models.Nurse{},
		&models.Secretary{},
		&models.Appointment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
