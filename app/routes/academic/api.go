package academic

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

var validate = validator.New()

func ListCalendarHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course := c.Query("course")
		academicYear := c.Query("academic_year")
		if course == "" || academicYear == "" {
			return c.Status(400).JSON(fiber.Map{"error": "course and academic_year are required"})
		}

		entries, err := database.ListCalendarEntries(db, course, academicYear)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch calendar entries"})
		}

		return c.JSON(fiber.Map{
			"entries": entries,
			"count":   len(entries),
		})
	}
}

// UpsertCalendarHandler records a semester start date for a cohort. The entry
// replaces any active row for the same (course, academic year, semester).
func UpsertCalendarHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.AcademicCalendar
		if err := c.BodyParser(&entry); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if err := validate.Struct(&entry); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		if err := database.UpsertCalendarEntry(db, &entry); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save calendar entry"})
		}

		return c.JSON(fiber.Map{
			"message": "Calendar entry saved",
			"entry":   entry,
		})
	}
}
