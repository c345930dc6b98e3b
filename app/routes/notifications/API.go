package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
)

func GetStudentNotificationsAPI(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread", false)

	list, err := database.ListNotificationsByStudent(config.GetDB(), c.Params("id"), unreadOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{
		"notifications": list,
		"count":         len(list),
	})
}

func MarkNotificationReadAPI(c *fiber.Ctx) error {
	if err := database.MarkNotificationRead(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notification"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked read"})
}
