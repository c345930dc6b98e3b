package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
	"github.com/DurgaPydahSoft/server-sub001/app/services"
)

var feeServices *services.Services

func SetupPaymentsRoutes(app *fiber.App, svc *services.Services) {
	feeServices = svc

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/student/:id", GetStudentPaymentsAPI)
	api.Post("/", CreatePaymentAPI)
}
