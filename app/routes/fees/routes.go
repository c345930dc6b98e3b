package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
	"github.com/DurgaPydahSoft/server-sub001/app/services"
)

var feeServices *services.Services

func SetupFeesRoutes(app *fiber.App, svc *services.Services) {
	feeServices = svc

	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	// Reminder policies per (course, academic year, year of study)
	api.Get("/policies", GetPoliciesAPI)
	api.Post("/policies", auth.RoleMiddleware("admin"), UpsertPolicyAPI)

	// Hostel fee schedules (total amount split across terms)
	api.Get("/schedules", GetScheduleAPI)
	api.Post("/schedules", auth.RoleMiddleware("admin"), UpsertScheduleAPI)

	// Reminder records
	api.Get("/reminders", GetRemindersAPI)

	// Manual triggers for the scheduled passes
	admin := api.Group("/", auth.RoleMiddleware("admin"))
	admin.Post("/run-reminder-cycle", RunReminderCycleAPI)
	admin.Post("/run-latefee-cycle", RunLateFeeCycleAPI)
	admin.Post("/recalculate-due-dates", RecalculateDueDatesAPI)
	admin.Post("/reconcile-payments", ReconcilePaymentsAPI)
	admin.Post("/backfill-reminders", BackfillRemindersAPI)
}
