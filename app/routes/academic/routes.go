package academic

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
)

// RegisterRoutes registers the academic calendar routes. Semester start dates
// recorded here anchor the fee due-date resolution.
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/academic-calendar")
	api.Use(auth.AuthMiddleware)

	api.Get("/", ListCalendarHandler(db))
	api.Post("/", auth.RoleMiddleware("admin"), UpsertCalendarHandler(db))
}
