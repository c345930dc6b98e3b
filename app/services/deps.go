package services

import (
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// Collaborator interfaces for the fee compliance processors. database.Store
// implements the storage-backed ones; tests use in-memory fakes.

// StudentDirectory resolves hostel students.
type StudentDirectory interface {
	GetStudent(id string) (*models.Student, error)
	ListActiveStudents() ([]*models.Student, error)
}

// AcademicCalendar resolves semester start dates. A nil date with a nil error
// means no calendar entry exists.
type AcademicCalendar interface {
	GetSemesterStart(course, academicYear string, semester models.Semester) (*time.Time, error)
}

// PolicyStore resolves the active fee reminder policy for a cohort. A nil
// policy with a nil error means none is configured.
type PolicyStore interface {
	GetPolicy(course, academicYear string, yearOfStudy int) (*models.FeeReminderPolicy, error)
}

// FeeSchedules resolves the active hostel fee schedule for a cohort. A nil
// schedule with a nil error means none is configured.
type FeeSchedules interface {
	GetFeeSchedule(course, academicYear string, yearOfStudy int) (*models.HostelFeeSchedule, error)
}

// PaymentLedger is the authoritative source for successful payments.
type PaymentLedger interface {
	ListSuccessfulPayments(studentID, academicYear, paymentType string) ([]*models.Payment, error)
}

// ReminderStore persists fee reminder records. MarkVisible, Hide and
// ApplyLateFee are conditional writes: they return true only when the guard
// held and this caller applied the transition, which is what makes
// overlapping passes safe.
type ReminderStore interface {
	GetReminder(studentID, academicYear string) (*models.FeeReminder, error)
	ListActiveReminders() ([]*models.FeeReminder, error)
	CreateReminder(r *models.FeeReminder) error
	UpdateReminderSchedule(id string, dueDates [models.NumTerms]time.Time, amounts [models.NumTerms]float64) error
	MarkVisible(id string, term int, at time.Time) (bool, error)
	Hide(id string, term int) (bool, error)
	ApplyLateFee(id string, term int, amount float64) (bool, error)
	SetTermStatuses(id string, paid [models.NumTerms]bool) error
	DeactivateReminder(studentID string) error
}

// NotificationLog records in-app notifications.
type NotificationLog interface {
	CreateNotification(n *models.Notification) error
}

// Channel senders are fire-and-forget: a failed send is logged by the caller
// and never affects state transitions or the other channels.

type PushSender interface {
	SendPush(student *models.Student, title, message string) error
}

type EmailSender interface {
	SendEmail(student *models.Student, subject, body string) error
}

type SMSSender interface {
	SendSMS(student *models.Student, message string) error
}
