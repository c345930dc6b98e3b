package database

import (
	"database/sql"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// Store bundles the query functions behind the collaborator interfaces the
// services package depends on, so the processors can be wired against
// Postgres in main and against fakes in tests.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) GetStudent(id string) (*models.Student, error) {
	return GetStudentByID(s.DB, id)
}

func (s *Store) ListActiveStudents() ([]*models.Student, error) {
	return ListActiveStudents(s.DB)
}

func (s *Store) GetSemesterStart(course, academicYear string, semester models.Semester) (*time.Time, error) {
	return GetSemesterStart(s.DB, course, academicYear, semester)
}

func (s *Store) GetPolicy(course, academicYear string, yearOfStudy int) (*models.FeeReminderPolicy, error) {
	return GetActiveFeePolicy(s.DB, course, academicYear, yearOfStudy)
}

func (s *Store) GetFeeSchedule(course, academicYear string, yearOfStudy int) (*models.HostelFeeSchedule, error) {
	return GetActiveFeeSchedule(s.DB, course, academicYear, yearOfStudy)
}

func (s *Store) ListSuccessfulPayments(studentID, academicYear, paymentType string) ([]*models.Payment, error) {
	return ListSuccessfulPayments(s.DB, studentID, academicYear, paymentType)
}

func (s *Store) GetReminder(studentID, academicYear string) (*models.FeeReminder, error) {
	return GetFeeReminderByStudent(s.DB, studentID, academicYear)
}

func (s *Store) ListActiveReminders() ([]*models.FeeReminder, error) {
	return ListActiveFeeReminders(s.DB)
}

func (s *Store) CreateReminder(r *models.FeeReminder) error {
	return CreateFeeReminder(s.DB, r)
}

func (s *Store) UpdateReminderSchedule(id string, dueDates [models.NumTerms]time.Time, amounts [models.NumTerms]float64) error {
	return UpdateReminderSchedule(s.DB, id, dueDates, amounts)
}

func (s *Store) MarkVisible(id string, term int, at time.Time) (bool, error) {
	return MarkReminderVisible(s.DB, id, term, at)
}

func (s *Store) Hide(id string, term int) (bool, error) {
	return HideReminder(s.DB, id, term)
}

func (s *Store) ApplyLateFee(id string, term int, amount float64) (bool, error) {
	return ApplyTermLateFee(s.DB, id, term, amount)
}

func (s *Store) SetTermStatuses(id string, paid [models.NumTerms]bool) error {
	return SetTermStatuses(s.DB, id, paid)
}

func (s *Store) DeactivateReminder(studentID string) error {
	return DeactivateFeeReminder(s.DB, studentID)
}

func (s *Store) CreateNotification(n *models.Notification) error {
	return CreateNotification(s.DB, n)
}
