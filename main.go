package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/clinicore/clinic-backend/cron"
	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/redis"
	"github.com/clinicore/clinic-backend/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	db.Seed()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic backend is running")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupAdminRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupSecretaryRoutes(app)
	routes.SetupNurseRoutes(app)
	routes.SetupNotificationRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
