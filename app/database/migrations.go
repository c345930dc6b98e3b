package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions (user_id)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			roll_number TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender VARCHAR(10),
			course TEXT NOT NULL,
			branch TEXT,
			year_of_study INT NOT NULL,
			academic_year TEXT NOT NULL,
			room_number VARCHAR(20),
			phone VARCHAR(20),
			email TEXT,
			concession NUMERIC NOT NULL DEFAULT 0,
			registration_date DATE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_cohort ON students (course, academic_year, year_of_study)`,

		`CREATE TABLE IF NOT EXISTS academic_calendar (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			semester SMALLINT NOT NULL CHECK (semester IN (1, 2)),
			start_date DATE NOT NULL,
			end_date DATE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_academic_calendar_active
			ON academic_calendar (course, academic_year, semester) WHERE is_active`,

		`CREATE TABLE IF NOT EXISTS fee_reminder_policies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			year_of_study INT NOT NULL,
			term1_days_from_anchor INT NOT NULL,
			term1_anchor_semester SMALLINT NOT NULL DEFAULT 1,
			term1_late_fee NUMERIC NOT NULL DEFAULT 0,
			term2_days_from_anchor INT NOT NULL,
			term2_anchor_semester SMALLINT NOT NULL DEFAULT 1,
			term2_late_fee NUMERIC NOT NULL DEFAULT 0,
			term3_days_from_anchor INT NOT NULL,
			term3_anchor_semester SMALLINT NOT NULL DEFAULT 2,
			term3_late_fee NUMERIC NOT NULL DEFAULT 0,
			pre_reminder_offsets INTEGER[] NOT NULL DEFAULT '{}',
			post_reminder_offsets INTEGER[] NOT NULL DEFAULT '{}',
			pre_push BOOLEAN NOT NULL DEFAULT true,
			pre_email BOOLEAN NOT NULL DEFAULT true,
			pre_sms BOOLEAN NOT NULL DEFAULT false,
			post_push BOOLEAN NOT NULL DEFAULT true,
			post_email BOOLEAN NOT NULL DEFAULT true,
			post_sms BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_fee_reminder_policies_active
			ON fee_reminder_policies (course, academic_year, year_of_study) WHERE is_active`,

		`CREATE TABLE IF NOT EXISTS hostel_fee_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			year_of_study INT NOT NULL,
			total_amount NUMERIC NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_hostel_fee_schedules_active
			ON hostel_fee_schedules (course, academic_year, year_of_study) WHERE is_active`,

		`CREATE TABLE IF NOT EXISTS fee_reminders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year TEXT NOT NULL,
			registration_date DATE NOT NULL,
			term1_due_date DATE NOT NULL,
			term1_fee_amount NUMERIC NOT NULL DEFAULT 0,
			term1_status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			term1_visible BOOLEAN NOT NULL DEFAULT false,
			term1_issued_at TIMESTAMPTZ,
			term1_late_fee_applied BOOLEAN NOT NULL DEFAULT false,
			term1_late_fee_accrued NUMERIC NOT NULL DEFAULT 0,
			term2_due_date DATE NOT NULL,
			term2_fee_amount NUMERIC NOT NULL DEFAULT 0,
			term2_status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			term2_visible BOOLEAN NOT NULL DEFAULT false,
			term2_issued_at TIMESTAMPTZ,
			term2_late_fee_applied BOOLEAN NOT NULL DEFAULT false,
			term2_late_fee_accrued NUMERIC NOT NULL DEFAULT 0,
			term3_due_date DATE NOT NULL,
			term3_fee_amount NUMERIC NOT NULL DEFAULT 0,
			term3_status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			term3_visible BOOLEAN NOT NULL DEFAULT false,
			term3_issued_at TIMESTAMPTZ,
			term3_late_fee_applied BOOLEAN NOT NULL DEFAULT false,
			term3_late_fee_accrued NUMERIC NOT NULL DEFAULT 0,
			current_level INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_fee_reminders_student_year
			ON fee_reminders (student_id, academic_year)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_reminders_active ON fee_reminders (is_active)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year TEXT NOT NULL,
			term INT NOT NULL CHECK (term BETWEEN 1 AND 3),
			amount NUMERIC NOT NULL,
			payment_type TEXT NOT NULL DEFAULT 'hostel_fee',
			payment_method VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			transaction_id TEXT,
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_year
			ON payments (student_id, academic_year, payment_type)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			type VARCHAR(30) NOT NULL,
			term INT,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_student ON notifications (student_id, is_read)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
