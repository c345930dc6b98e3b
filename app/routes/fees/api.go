package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
)

func GetRemindersAPI(c *fiber.Ctx) error {
	reminders, err := database.ListActiveFeeReminders(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee records"})
	}

	return c.JSON(fiber.Map{
		"reminders": reminders,
		"count":     len(reminders),
	})
}

// RunReminderCycleAPI triggers one reminder pass outside the schedule. The
// pass is the same one the background scheduler runs, so a manual trigger
// overlapping a scheduled run is harmless.
func RunReminderCycleAPI(c *fiber.Ctx) error {
	summary := feeServices.Cycle.Run()
	return c.JSON(fiber.Map{
		"message": "Reminder cycle completed",
		"summary": summary,
	})
}

func RunLateFeeCycleAPI(c *fiber.Ctx) error {
	summary := feeServices.LateFees.Run()
	return c.JSON(fiber.Map{
		"message": "Late-fee cycle completed",
		"summary": summary,
	})
}

func RecalculateDueDatesAPI(c *fiber.Ctx) error {
	summary := feeServices.DueDates.RecalculateAll()
	return c.JSON(fiber.Map{
		"message": "Due dates recalculated",
		"summary": summary,
	})
}

func ReconcilePaymentsAPI(c *fiber.Ctx) error {
	summary := feeServices.Reconciler.Run()
	return c.JSON(fiber.Map{
		"message": "Payments reconciled",
		"summary": summary,
	})
}

// BackfillRemindersAPI creates fee records for active students who predate
// the scheduler rollout.
func BackfillRemindersAPI(c *fiber.Ctx) error {
	summary := feeServices.DueDates.BackfillReminders()
	return c.JSON(fiber.Map{
		"message": "Reminder records backfilled",
		"summary": summary,
	})
}
