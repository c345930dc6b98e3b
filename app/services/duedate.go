package services

import (
	"fmt"
	"log"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// Fallback due-date offsets (days after registration) used when a cohort has
// no configured policy.
var fallbackDueOffsets = [models.NumTerms]int{5, 90, 210}

// DueDateService resolves term due dates from the layered policy chain and
// owns reminder-record creation and recalculation.
type DueDateService struct {
	Students  StudentDirectory
	Calendar  AcademicCalendar
	Policies  PolicyStore
	Schedules FeeSchedules
	Reminders ReminderStore

	// Now is the injectable clock; nil means time.Now.
	Now func() time.Time
}

func (s *DueDateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ResolveDueDates computes the three term due dates for a student.
//
// With a policy: each term's offset is added to its anchor semester's start
// date; semester 2 falls back to semester 1's start date when unconfigured,
// and to "now" when the course has no calendar at all. Without a policy: the
// fallback offsets are added to the registration date. Resolution is
// deterministic for identical inputs.
func (s *DueDateService) ResolveDueDates(student *models.Student) ([models.NumTerms]time.Time, error) {
	var dueDates [models.NumTerms]time.Time

	if student.Course == "" || student.AcademicYear == "" {
		return dueDates, fmt.Errorf("student %s has no course/academic year", student.ID)
	}

	policy, err := s.Policies.GetPolicy(student.Course, student.AcademicYear, student.YearOfStudy)
	if err != nil {
		return dueDates, fmt.Errorf("policy lookup failed: %v", err)
	}

	if policy == nil {
		for t := 0; t < models.NumTerms; t++ {
			dueDates[t] = student.RegistrationDate.AddDate(0, 0, fallbackDueOffsets[t])
		}
		return dueDates, nil
	}

	for t := 1; t <= models.NumTerms; t++ {
		cfg := policy.Term(t)
		anchor, err := s.resolveAnchor(student.Course, student.AcademicYear, cfg.AnchorSemester)
		if err != nil {
			return dueDates, err
		}
		dueDates[t-1] = anchor.AddDate(0, 0, cfg.DaysFromAnchor)
	}
	return dueDates, nil
}

func (s *DueDateService) resolveAnchor(course, academicYear string, semester models.Semester) (time.Time, error) {
	start, err := s.Calendar.GetSemesterStart(course, academicYear, semester)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar lookup failed: %v", err)
	}
	if start == nil && semester == models.Semester2 {
		start, err = s.Calendar.GetSemesterStart(course, academicYear, models.Semester1)
		if err != nil {
			return time.Time{}, fmt.Errorf("calendar lookup failed: %v", err)
		}
	}
	if start == nil {
		return s.now(), nil
	}
	return *start, nil
}

// EnsureReminderRecord creates the student's reminder record for their
// academic year if it does not exist yet, caching resolved due dates and the
// nominal term fee amounts from the fee schedule.
func (s *DueDateService) EnsureReminderRecord(student *models.Student) (*models.FeeReminder, error) {
	existing, err := s.Reminders.GetReminder(student.ID, student.AcademicYear)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	dueDates, err := s.ResolveDueDates(student)
	if err != nil {
		return nil, err
	}

	amounts, err := s.termAmounts(student)
	if err != nil {
		return nil, err
	}

	rec := &models.FeeReminder{
		StudentID:        student.ID,
		AcademicYear:     student.AcademicYear,
		RegistrationDate: student.RegistrationDate.Time,
	}
	for t := 0; t < models.NumTerms; t++ {
		rec.Terms[t].DueDate = dueDates[t]
		rec.Terms[t].FeeAmount = amounts[t]
	}

	if err := s.Reminders.CreateReminder(rec); err != nil {
		return nil, fmt.Errorf("failed to create reminder record: %v", err)
	}
	return rec, nil
}

func (s *DueDateService) termAmounts(student *models.Student) ([models.NumTerms]float64, error) {
	schedule, err := s.Schedules.GetFeeSchedule(student.Course, student.AcademicYear, student.YearOfStudy)
	if err != nil {
		return [models.NumTerms]float64{}, fmt.Errorf("fee schedule lookup failed: %v", err)
	}
	if schedule == nil {
		return [models.NumTerms]float64{}, nil
	}
	return schedule.TermAmounts(), nil
}

// RecalcSummary reports the outcome of a batch pass.
type RecalcSummary struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Created   int `json:"created"`
	Errors    int `json:"errors"`
}

// RecalculateAll re-resolves and re-saves due dates and fee amounts for every
// active reminder record. Run after an administrator edits a policy; cached
// dates never change outside this pass. Per-record failures are logged and
// skipped.
func (s *DueDateService) RecalculateAll() RecalcSummary {
	var summary RecalcSummary

	reminders, err := s.Reminders.ListActiveReminders()
	if err != nil {
		log.Printf("Failed to list reminder records: %v", err)
		summary.Errors++
		return summary
	}

	for _, rec := range reminders {
		summary.Processed++

		student, err := s.Students.GetStudent(rec.StudentID)
		if err != nil {
			log.Printf("Skipping reminder %s: student %s not found: %v", rec.ID, rec.StudentID, err)
			summary.Errors++
			continue
		}

		dueDates, err := s.ResolveDueDates(student)
		if err != nil {
			log.Printf("Skipping reminder %s: %v", rec.ID, err)
			summary.Errors++
			continue
		}

		amounts, err := s.termAmounts(student)
		if err != nil {
			log.Printf("Skipping reminder %s: %v", rec.ID, err)
			summary.Errors++
			continue
		}

		if err := s.Reminders.UpdateReminderSchedule(rec.ID, dueDates, amounts); err != nil {
			log.Printf("Failed to update reminder %s: %v", rec.ID, err)
			summary.Errors++
			continue
		}
		summary.Updated++
	}

	log.Printf("Due-date recalculation completed: %d processed, %d updated, %d errors",
		summary.Processed, summary.Updated, summary.Errors)
	return summary
}

// BackfillReminders creates missing reminder records for all active students.
func (s *DueDateService) BackfillReminders() RecalcSummary {
	var summary RecalcSummary

	students, err := s.Students.ListActiveStudents()
	if err != nil {
		log.Printf("Failed to list students: %v", err)
		summary.Errors++
		return summary
	}

	for _, student := range students {
		summary.Processed++

		existing, err := s.Reminders.GetReminder(student.ID, student.AcademicYear)
		if err != nil {
			log.Printf("Skipping student %s: %v", student.ID, err)
			summary.Errors++
			continue
		}
		if existing != nil {
			continue
		}

		if _, err := s.EnsureReminderRecord(student); err != nil {
			log.Printf("Failed to backfill reminder for student %s: %v", student.ID, err)
			summary.Errors++
			continue
		}
		summary.Created++
	}

	log.Printf("Reminder backfill completed: %d processed, %d created, %d errors",
		summary.Processed, summary.Created, summary.Errors)
	return summary
}
