package payments

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

var validate = validator.New()

func GetStudentPaymentsAPI(c *fiber.Ctx) error {
	payments, err := database.ListPaymentsByStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

// CreatePaymentAPI records a ledger entry. A completed hostel-fee payment
// reconciles the student's term statuses in the same request, which flips the
// term to paid and hides any live reminder without waiting for a batch pass.
func CreatePaymentAPI(c *fiber.Ctx) error {
	var payment models.Payment
	if err := c.BodyParser(&payment); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	if err := validate.Struct(&payment); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreatePayment(config.GetDB(), &payment); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	if payment.Status == models.PaymentCompleted && payment.PaymentType == models.PaymentTypeHostelFee {
		if err := feeServices.Reconciler.ReconcileStudent(payment.StudentID, payment.AcademicYear); err != nil {
			// The ledger entry is saved; a later reconciliation pass will
			// pick the status change up.
			log.Printf("Payment %s recorded but reconciliation failed: %v", payment.ID, err)
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payment recorded",
		"payment": payment,
	})
}
