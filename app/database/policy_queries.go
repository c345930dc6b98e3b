package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

const policyColumns = `id, course, academic_year, year_of_study,
	term1_days_from_anchor, term1_anchor_semester, term1_late_fee,
	term2_days_from_anchor, term2_anchor_semester, term2_late_fee,
	term3_days_from_anchor, term3_anchor_semester, term3_late_fee,
	pre_reminder_offsets, post_reminder_offsets,
	pre_push, pre_email, pre_sms, post_push, post_email, post_sms,
	is_active, created_at, updated_at`

func scanPolicy(row interface{ Scan(...interface{}) error }) (*models.FeeReminderPolicy, error) {
	p := &models.FeeReminderPolicy{}
	err := row.Scan(
		&p.ID, &p.Course, &p.AcademicYear, &p.YearOfStudy,
		&p.Term1.DaysFromAnchor, &p.Term1.AnchorSemester, &p.Term1.LateFee,
		&p.Term2.DaysFromAnchor, &p.Term2.AnchorSemester, &p.Term2.LateFee,
		&p.Term3.DaysFromAnchor, &p.Term3.AnchorSemester, &p.Term3.LateFee,
		pq.Array(&p.PreReminderOffsets), pq.Array(&p.PostReminderOffsets),
		&p.PreChannels.Push, &p.PreChannels.Email, &p.PreChannels.SMS,
		&p.PostChannels.Push, &p.PostChannels.Email, &p.PostChannels.SMS,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetActiveFeePolicy returns the active policy for the cohort, or nil when no
// policy is configured (the caller falls back to registration-date offsets).
func GetActiveFeePolicy(db *sql.DB, course, academicYear string, yearOfStudy int) (*models.FeeReminderPolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM fee_reminder_policies
			  WHERE course = $1 AND academic_year = $2 AND year_of_study = $3 AND is_active = true`

	p, err := scanPolicy(db.QueryRow(query, course, academicYear, yearOfStudy))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertFeePolicy deactivates any existing active policy for the cohort and
// inserts the new one, keeping at most one active policy per key.
func UpsertFeePolicy(db *sql.DB, p *models.FeeReminderPolicy) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE fee_reminder_policies SET is_active = false, updated_at = NOW()
					  WHERE course = $1 AND academic_year = $2 AND year_of_study = $3 AND is_active = true`,
		p.Course, p.AcademicYear, p.YearOfStudy)
	if err != nil {
		return fmt.Errorf("failed to deactivate previous policy: %v", err)
	}

	err = tx.QueryRow(`
		INSERT INTO fee_reminder_policies (course, academic_year, year_of_study,
			term1_days_from_anchor, term1_anchor_semester, term1_late_fee,
			term2_days_from_anchor, term2_anchor_semester, term2_late_fee,
			term3_days_from_anchor, term3_anchor_semester, term3_late_fee,
			pre_reminder_offsets, post_reminder_offsets,
			pre_push, pre_email, pre_sms, post_push, post_email, post_sms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at
	`,
		p.Course, p.AcademicYear, p.YearOfStudy,
		p.Term1.DaysFromAnchor, p.Term1.AnchorSemester, p.Term1.LateFee,
		p.Term2.DaysFromAnchor, p.Term2.AnchorSemester, p.Term2.LateFee,
		p.Term3.DaysFromAnchor, p.Term3.AnchorSemester, p.Term3.LateFee,
		pq.Array(p.PreReminderOffsets), pq.Array(p.PostReminderOffsets),
		p.PreChannels.Push, p.PreChannels.Email, p.PreChannels.SMS,
		p.PostChannels.Push, p.PostChannels.Email, p.PostChannels.SMS,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert policy: %v", err)
	}
	p.IsActive = true

	return tx.Commit()
}

func ListFeePolicies(db *sql.DB) ([]*models.FeeReminderPolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM fee_reminder_policies
			  WHERE is_active = true
			  ORDER BY course, academic_year, year_of_study`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []*models.FeeReminderPolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			log.Printf("Skipping unreadable fee policy row: %v", err)
			continue
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// GetActiveFeeSchedule returns the cohort's fee schedule, or nil when none is
// configured.
func GetActiveFeeSchedule(db *sql.DB, course, academicYear string, yearOfStudy int) (*models.HostelFeeSchedule, error) {
	s := &models.HostelFeeSchedule{}
	query := `SELECT id, course, academic_year, year_of_study, total_amount, is_active, created_at, updated_at
			  FROM hostel_fee_schedules
			  WHERE course = $1 AND academic_year = $2 AND year_of_study = $3
			    AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, course, academicYear, yearOfStudy).Scan(
		&s.ID, &s.Course, &s.AcademicYear, &s.YearOfStudy, &s.TotalAmount,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpsertFeeSchedule replaces the active fee schedule for the cohort.
func UpsertFeeSchedule(db *sql.DB, s *models.HostelFeeSchedule) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE hostel_fee_schedules SET is_active = false, updated_at = NOW()
					  WHERE course = $1 AND academic_year = $2 AND year_of_study = $3 AND is_active = true`,
		s.Course, s.AcademicYear, s.YearOfStudy)
	if err != nil {
		return fmt.Errorf("failed to deactivate previous schedule: %v", err)
	}

	err = tx.QueryRow(`
		INSERT INTO hostel_fee_schedules (course, academic_year, year_of_study, total_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, s.Course, s.AcademicYear, s.YearOfStudy, s.TotalAmount).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %v", err)
	}
	s.IsActive = true

	return tx.Commit()
}
