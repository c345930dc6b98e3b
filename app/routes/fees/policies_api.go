package fees

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

var validate = validator.New()

func GetPoliciesAPI(c *fiber.Ctx) error {
	policies, err := database.ListFeePolicies(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch policies"})
	}

	return c.JSON(fiber.Map{
		"policies": policies,
		"count":    len(policies),
	})
}

// UpsertPolicyAPI saves a reminder policy for a cohort and recalculates the
// cached due dates on every active fee record, so the edit takes effect in one
// step instead of waiting for the next scheduled pass.
func UpsertPolicyAPI(c *fiber.Ctx) error {
	var policy models.FeeReminderPolicy
	if err := c.BodyParser(&policy); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := validate.Struct(&policy); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpsertFeePolicy(config.GetDB(), &policy); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save policy"})
	}

	summary := feeServices.DueDates.RecalculateAll()
	log.Printf("Policy saved for %s/%s/year %d, due dates recalculated: %d updated, %d errors",
		policy.Course, policy.AcademicYear, policy.YearOfStudy, summary.Updated, summary.Errors)

	return c.JSON(fiber.Map{
		"message":     "Policy saved",
		"policy":      policy,
		"recalculate": summary,
	})
}

func GetScheduleAPI(c *fiber.Ctx) error {
	course := c.Query("course")
	academicYear := c.Query("academic_year")
	yearOfStudy := c.QueryInt("year_of_study", 0)
	if course == "" || academicYear == "" || yearOfStudy == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "course, academic_year and year_of_study are required"})
	}

	schedule, err := database.GetActiveFeeSchedule(config.GetDB(), course, academicYear, yearOfStudy)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee schedule"})
	}
	if schedule == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No active fee schedule"})
	}

	return c.JSON(fiber.Map{
		"schedule":     schedule,
		"term_amounts": schedule.TermAmounts(),
	})
}

func UpsertScheduleAPI(c *fiber.Ctx) error {
	var schedule models.HostelFeeSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := validate.Struct(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpsertFeeSchedule(config.GetDB(), &schedule); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save fee schedule"})
	}

	summary := feeServices.DueDates.RecalculateAll()
	return c.JSON(fiber.Map{
		"message":      "Fee schedule saved",
		"schedule":     schedule,
		"term_amounts": schedule.TermAmounts(),
		"recalculate":  summary,
	})
}
