package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

const reminderColumns = `id, student_id, academic_year, registration_date,
	term1_due_date, term1_fee_amount, term1_status, term1_visible, term1_issued_at, term1_late_fee_applied, term1_late_fee_accrued,
	term2_due_date, term2_fee_amount, term2_status, term2_visible, term2_issued_at, term2_late_fee_applied, term2_late_fee_accrued,
	term3_due_date, term3_fee_amount, term3_status, term3_visible, term3_issued_at, term3_late_fee_applied, term3_late_fee_accrued,
	current_level, is_active, created_at, updated_at`

// currentLevelExpr derives current_level from the three visibility flags.
const currentLevelExpr = `CASE WHEN term3_visible THEN 3
	WHEN term2_visible THEN 2
	WHEN term1_visible THEN 1
	ELSE 0 END`

func termPrefix(term int) (string, error) {
	if term < 1 || term > models.NumTerms {
		return "", fmt.Errorf("invalid term %d", term)
	}
	return fmt.Sprintf("term%d", term), nil
}

func scanFeeReminder(row interface{ Scan(...interface{}) error }) (*models.FeeReminder, error) {
	r := &models.FeeReminder{}
	var issued [models.NumTerms]sql.NullTime
	var status [models.NumTerms]string

	err := row.Scan(
		&r.ID, &r.StudentID, &r.AcademicYear, &r.RegistrationDate,
		&r.Terms[0].DueDate, &r.Terms[0].FeeAmount, &status[0], &r.Terms[0].Visible, &issued[0], &r.Terms[0].LateFeeApplied, &r.Terms[0].LateFeeAccrued,
		&r.Terms[1].DueDate, &r.Terms[1].FeeAmount, &status[1], &r.Terms[1].Visible, &issued[1], &r.Terms[1].LateFeeApplied, &r.Terms[1].LateFeeAccrued,
		&r.Terms[2].DueDate, &r.Terms[2].FeeAmount, &status[2], &r.Terms[2].Visible, &issued[2], &r.Terms[2].LateFeeApplied, &r.Terms[2].LateFeeAccrued,
		&r.CurrentLevel, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for i := 0; i < models.NumTerms; i++ {
		r.Terms[i].Status = models.FeeStatus(status[i])
		if issued[i].Valid {
			t := issued[i].Time
			r.Terms[i].IssuedAt = &t
		}
	}
	return r, nil
}

func CreateFeeReminder(db *sql.DB, r *models.FeeReminder) error {
	query := `INSERT INTO fee_reminders (student_id, academic_year, registration_date,
				term1_due_date, term1_fee_amount,
				term2_due_date, term2_fee_amount,
				term3_due_date, term3_fee_amount)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		r.StudentID, r.AcademicYear, r.RegistrationDate,
		r.Terms[0].DueDate, r.Terms[0].FeeAmount,
		r.Terms[1].DueDate, r.Terms[1].FeeAmount,
		r.Terms[2].DueDate, r.Terms[2].FeeAmount,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return err
	}

	r.IsActive = true
	for i := range r.Terms {
		r.Terms[i].Status = models.FeeUnpaid
	}
	return nil
}

// GetFeeReminderByStudent returns the student's reminder record for the
// academic year, or nil when none exists.
func GetFeeReminderByStudent(db *sql.DB, studentID, academicYear string) (*models.FeeReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM fee_reminders
			  WHERE student_id = $1 AND academic_year = $2`

	r, err := scanFeeReminder(db.QueryRow(query, studentID, academicYear))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func ListActiveFeeReminders(db *sql.DB) ([]*models.FeeReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM fee_reminders
			  WHERE is_active = true
			  ORDER BY created_at`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.FeeReminder
	for rows.Next() {
		r, err := scanFeeReminder(rows)
		if err != nil {
			log.Printf("Skipping unreadable fee reminder row: %v", err)
			continue
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// UpdateReminderSchedule overwrites the cached due dates and fee amounts.
// Used only by the explicit recalculation pass.
func UpdateReminderSchedule(db *sql.DB, id string, dueDates [models.NumTerms]time.Time, amounts [models.NumTerms]float64) error {
	query := `UPDATE fee_reminders SET
				term1_due_date = $2, term1_fee_amount = $3,
				term2_due_date = $4, term2_fee_amount = $5,
				term3_due_date = $6, term3_fee_amount = $7,
				updated_at = NOW()
			  WHERE id = $1`

	_, err := db.Exec(query, id,
		dueDates[0], amounts[0], dueDates[1], amounts[1], dueDates[2], amounts[2])
	return err
}

// MarkReminderVisible flips a term's reminder to visible. The WHERE clause is
// the transition guard: it only fires while the term is hidden and unpaid, so
// overlapping passes cannot double-issue. Returns true if this call won the
// transition.
func MarkReminderVisible(db *sql.DB, id string, term int, at time.Time) (bool, error) {
	prefix, err := termPrefix(term)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE fee_reminders
		SET %[1]s_visible = true, %[1]s_issued_at = $2,
			current_level = GREATEST(current_level, %[2]d), updated_at = NOW()
		WHERE id = $1 AND is_active = true
		  AND %[1]s_visible = false AND %[1]s_status = 'unpaid'`, prefix, term)

	res, err := db.Exec(query, id, at)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// HideReminder flips a term's reminder back to hidden (pulse expiry) and
// re-derives current_level. Returns true if the term was visible.
func HideReminder(db *sql.DB, id string, term int) (bool, error) {
	prefix, err := termPrefix(term)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE fee_reminders
		SET %[1]s_visible = false, updated_at = NOW()
		WHERE id = $1 AND %[1]s_visible = true`, prefix)

	res, err := db.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		return false, err
	}
	return true, recomputeCurrentLevel(db, id)
}

// ApplyTermLateFee accrues the late fee for a term exactly once. The
// late_fee_applied guard in the WHERE clause makes re-runs no-ops.
func ApplyTermLateFee(db *sql.DB, id string, term int, amount float64) (bool, error) {
	prefix, err := termPrefix(term)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE fee_reminders
		SET %[1]s_late_fee_applied = true,
			%[1]s_late_fee_accrued = %[1]s_late_fee_accrued + $2,
			updated_at = NOW()
		WHERE id = $1 AND is_active = true AND %[1]s_late_fee_applied = false`, prefix)

	res, err := db.Exec(query, id, amount)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetTermStatuses overwrites all three term statuses from the reconciled
// ledger view. Terms now paid are hidden immediately regardless of the pulse
// window, and current_level is re-derived.
func SetTermStatuses(db *sql.DB, id string, paid [models.NumTerms]bool) error {
	query := `UPDATE fee_reminders SET
				term1_status = $2, term1_visible = CASE WHEN $2 = 'paid' THEN false ELSE term1_visible END,
				term2_status = $3, term2_visible = CASE WHEN $3 = 'paid' THEN false ELSE term2_visible END,
				term3_status = $4, term3_visible = CASE WHEN $4 = 'paid' THEN false ELSE term3_visible END,
				updated_at = NOW()
			  WHERE id = $1`

	statuses := [models.NumTerms]string{}
	for i, p := range paid {
		if p {
			statuses[i] = string(models.FeePaid)
		} else {
			statuses[i] = string(models.FeeUnpaid)
		}
	}

	if _, err := db.Exec(query, id, statuses[0], statuses[1], statuses[2]); err != nil {
		return err
	}
	return recomputeCurrentLevel(db, id)
}

// DeactivateFeeReminder marks the record inactive on hostel withdrawal. The
// record is never deleted.
func DeactivateFeeReminder(db *sql.DB, studentID string) error {
	_, err := db.Exec(`UPDATE fee_reminders SET is_active = false, updated_at = NOW() WHERE student_id = $1`, studentID)
	return err
}

func recomputeCurrentLevel(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE fee_reminders SET current_level = `+currentLevelExpr+` WHERE id = $1`, id)
	return err
}
