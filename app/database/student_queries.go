package database

import (
	"database/sql"
	"log"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

const studentColumns = `id, roll_number, first_name, last_name, gender, course, branch,
	year_of_study, academic_year, room_number, phone, email, concession,
	registration_date, is_active, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.RollNumber, &s.FirstName, &s.LastName, &s.Gender, &s.Course, &s.Branch,
		&s.YearOfStudy, &s.AcademicYear, &s.RoomNumber, &s.Phone, &s.Email, &s.Concession,
		&s.RegistrationDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (roll_number, first_name, last_name, gender, course, branch,
				year_of_study, academic_year, room_number, phone, email, concession, registration_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		s.RollNumber, s.FirstName, s.LastName, s.Gender, s.Course, s.Branch,
		s.YearOfStudy, s.AcademicYear, s.RoomNumber, s.Phone, s.Email, s.Concession,
		s.RegistrationDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`
	return scanStudent(db.QueryRow(query, studentID))
}

func ListActiveStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE is_active = true AND deleted_at IS NULL
			  ORDER BY roll_number`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			log.Printf("Skipping unreadable student row: %v", err)
			continue
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET
				first_name = $2, last_name = $3, gender = $4, course = $5, branch = $6,
				year_of_study = $7, academic_year = $8, room_number = $9, phone = $10,
				email = $11, concession = $12, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	_, err := db.Exec(query,
		s.ID, s.FirstName, s.LastName, s.Gender, s.Course, s.Branch,
		s.YearOfStudy, s.AcademicYear, s.RoomNumber, s.Phone, s.Email, s.Concession,
	)
	return err
}

// DeactivateStudent marks a student as withdrawn from the hostel. The row is
// kept; the fee reminder record is deactivated separately.
func DeactivateStudent(db *sql.DB, studentID string) error {
	_, err := db.Exec(`UPDATE students SET is_active = false, updated_at = NOW() WHERE id = $1`, studentID)
	return err
}
