package database

import (
	"database/sql"
	"log"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// CreatePayment records a payment in the ledger.
func CreatePayment(db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments (student_id, academic_year, term, amount, payment_type,
				payment_method, status, transaction_id, payment_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		p.StudentID, p.AcademicYear, p.Term, p.Amount, p.PaymentType,
		p.PaymentMethod, string(p.Status), p.TransactionID, p.PaymentDate, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// ListSuccessfulPayments returns all completed payments for a student in an
// academic year, filtered by payment type. This is the reconciler's and the
// late-fee processor's view of the ledger.
func ListSuccessfulPayments(db *sql.DB, studentID, academicYear, paymentType string) ([]*models.Payment, error) {
	query := `SELECT id, student_id, academic_year, term, amount, payment_type,
				payment_method, status, transaction_id, payment_date, notes, created_at, updated_at
			  FROM payments
			  WHERE student_id = $1 AND academic_year = $2 AND payment_type = $3
			    AND status = 'completed' AND deleted_at IS NULL
			  ORDER BY payment_date`

	return queryPayments(db, query, studentID, academicYear, paymentType)
}

// ListPaymentsByStudent returns the student's full payment history.
func ListPaymentsByStudent(db *sql.DB, studentID string) ([]*models.Payment, error) {
	query := `SELECT id, student_id, academic_year, term, amount, payment_type,
				payment_method, status, transaction_id, payment_date, notes, created_at, updated_at
			  FROM payments
			  WHERE student_id = $1 AND deleted_at IS NULL
			  ORDER BY payment_date DESC`

	return queryPayments(db, query, studentID)
}

func queryPayments(db *sql.DB, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var status string
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.AcademicYear, &p.Term, &p.Amount, &p.PaymentType,
			&p.PaymentMethod, &status, &p.TransactionID, &p.PaymentDate, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			log.Printf("Skipping unreadable payment row: %v", err)
			continue
		}
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
