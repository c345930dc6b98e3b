package students

import (
	"database/sql"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.ListActiveStudents(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	return c.JSON(fiber.Map{"student": student})
}

// GetStudentFeesAPI returns the student's fee reminder record for an academic
// year (defaults to the student's current one) together with the due dates,
// term statuses and accrued late fees.
func GetStudentFeesAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	academicYear := c.Query("academic_year", student.AcademicYear)
	rec, err := database.GetFeeReminderByStudent(config.GetDB(), student.ID, academicYear)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee record"})
	}
	if rec == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No fee record for academic year"})
	}

	return c.JSON(fiber.Map{
		"student":  student,
		"reminder": rec,
	})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := validate.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	// Registration opens the fee record immediately so due dates exist even
	// before any policy is configured for the cohort.
	rec, err := feeServices.DueDates.EnsureReminderRecord(&student)
	if err != nil {
		log.Printf("Student %s registered but fee record creation failed: %v", student.ID, err)
		return c.Status(201).JSON(fiber.Map{
			"message": "Student created, fee record pending",
			"student": student,
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Student created",
		"student":  student,
		"reminder": rec,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	student.ID = c.Params("id")

	if err := validate.StructExcept(&student, "RegistrationDate"); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateStudent(config.GetDB(), &student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"message": "Student updated"})
}

// DeactivateStudentAPI withdraws a student from the hostel and closes the
// active fee reminder record so the scheduled passes stop touching it.
func DeactivateStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	if err := database.DeactivateStudent(config.GetDB(), studentID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to deactivate student"})
	}

	if err := database.DeactivateFeeReminder(config.GetDB(), studentID); err != nil {
		log.Printf("Student %s deactivated but fee record close failed: %v", studentID, err)
	}

	return c.JSON(fiber.Map{"message": "Student deactivated"})
}
