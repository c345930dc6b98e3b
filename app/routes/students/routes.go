package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
	"github.com/DurgaPydahSoft/server-sub001/app/services"
)

var feeServices *services.Services

func SetupStudentsRoutes(app *fiber.App, svc *services.Services) {
	feeServices = svc

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)            // Get all active students
	api.Get("/:id", GetStudentByIDAPI)      // Get single student by ID
	api.Get("/:id/fees", GetStudentFeesAPI) // Fee record with reminder state
	api.Post("/", CreateStudentAPI)         // Register new student
	api.Put("/:id", UpdateStudentAPI)       // Update existing student
	api.Delete("/:id", DeactivateStudentAPI)
}
