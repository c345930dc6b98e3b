package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// GetSemesterStart returns the configured start date for a course semester,
// or nil when no calendar entry exists.
func GetSemesterStart(db *sql.DB, course, academicYear string, semester models.Semester) (*time.Time, error) {
	var start time.Time
	query := `SELECT start_date FROM academic_calendar
			  WHERE course = $1 AND academic_year = $2 AND semester = $3 AND is_active = true`

	err := db.QueryRow(query, course, academicYear, semester).Scan(&start)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &start, nil
}

// UpsertCalendarEntry replaces the active calendar entry for the semester.
func UpsertCalendarEntry(db *sql.DB, entry *models.AcademicCalendar) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE academic_calendar SET is_active = false, updated_at = NOW()
					  WHERE course = $1 AND academic_year = $2 AND semester = $3 AND is_active = true`,
		entry.Course, entry.AcademicYear, entry.Semester)
	if err != nil {
		return fmt.Errorf("failed to deactivate previous calendar entry: %v", err)
	}

	err = tx.QueryRow(`
		INSERT INTO academic_calendar (course, academic_year, semester, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, entry.Course, entry.AcademicYear, entry.Semester, entry.StartDate, entry.EndDate).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert calendar entry: %v", err)
	}
	entry.IsActive = true

	return tx.Commit()
}

func ListCalendarEntries(db *sql.DB, course, academicYear string) ([]*models.AcademicCalendar, error) {
	query := `SELECT id, course, academic_year, semester, start_date, end_date, is_active, created_at, updated_at
			  FROM academic_calendar
			  WHERE course = $1 AND academic_year = $2 AND is_active = true
			  ORDER BY semester`

	rows, err := db.Query(query, course, academicYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AcademicCalendar
	for rows.Next() {
		e := &models.AcademicCalendar{}
		var endDate sql.NullTime
		err := rows.Scan(&e.ID, &e.Course, &e.AcademicYear, &e.Semester,
			&e.StartDate, &endDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			log.Printf("Skipping unreadable calendar row: %v", err)
			continue
		}
		if endDate.Valid {
			e.EndDate = models.CustomTime{Time: endDate.Time}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
