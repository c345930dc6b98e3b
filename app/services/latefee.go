package services

import (
	"fmt"
	"log"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// LateFeeService applies the configured late fee to overdue unpaid terms, at
// most once per term for the lifetime of the record.
type LateFeeService struct {
	Reminders ReminderStore
	Students  StudentDirectory
	Policies  PolicyStore
	Schedules FeeSchedules
	Payments  PaymentLedger
	Resolver  *DueDateService

	Now func() time.Time
}

func (s *LateFeeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LateFeeSummary reports the outcome of one late-fee pass.
type LateFeeSummary struct {
	Processed int `json:"processed"`
	Applied   int `json:"applied"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Run executes one late-fee pass. A term accrues its late fee when the due
// date has passed (date-only comparison), the reconciled term balance is
// positive, a positive late fee is configured, and no late fee has been
// applied before. The applied flag is monotonic: once set it never reverts,
// even if the term is later paid. Missing policy, calendar or schedule data
// skips the student for this pass.
func (s *LateFeeService) Run() LateFeeSummary {
	var summary LateFeeSummary
	now := s.now()

	reminders, err := s.Reminders.ListActiveReminders()
	if err != nil {
		log.Printf("Late-fee pass: failed to list records: %v", err)
		summary.Errors++
		return summary
	}

	for _, rec := range reminders {
		summary.Processed++
		if err := s.processRecord(rec, now, &summary); err != nil {
			log.Printf("Late-fee pass: skipping record %s: %v", rec.ID, err)
			summary.Skipped++
		}
	}

	log.Printf("Late-fee pass completed: %d processed, %d applied, %d skipped, %d errors",
		summary.Processed, summary.Applied, summary.Skipped, summary.Errors)
	return summary
}

func (s *LateFeeService) processRecord(rec *models.FeeReminder, now time.Time, summary *LateFeeSummary) error {
	student, err := s.Students.GetStudent(rec.StudentID)
	if err != nil {
		return fmt.Errorf("student %s not found: %v", rec.StudentID, err)
	}

	policy, err := s.Policies.GetPolicy(student.Course, student.AcademicYear, student.YearOfStudy)
	if err != nil {
		return fmt.Errorf("policy lookup failed: %v", err)
	}
	if policy == nil {
		// No policy means no late fee is configured for the cohort.
		return fmt.Errorf("no active policy for %s/%s/year %d", student.Course, student.AcademicYear, student.YearOfStudy)
	}

	dueDates, err := s.Resolver.ResolveDueDates(student)
	if err != nil {
		return fmt.Errorf("due-date resolution failed: %v", err)
	}

	amounts, err := s.termAmounts(student, rec)
	if err != nil {
		return err
	}

	paidByTerm, err := s.paidByTerm(student)
	if err != nil {
		return fmt.Errorf("payment lookup failed: %v", err)
	}

	for t := 1; t <= models.NumTerms; t++ {
		lateFee := policy.Term(t).LateFee
		if lateFee <= 0 || rec.Terms[t-1].LateFeeApplied {
			continue
		}
		if !dueDateReached(now, dueDates[t-1]) {
			continue
		}

		balance := amounts[t-1] - paidByTerm[t-1]
		if balance <= 0 {
			continue
		}

		applied, err := s.Reminders.ApplyLateFee(rec.ID, t, lateFee)
		if err != nil {
			return fmt.Errorf("term %d late-fee update failed: %v", t, err)
		}
		if applied {
			summary.Applied++
			log.Printf("Applied late fee of %.2f to student %s term %d (balance %.2f)",
				lateFee, student.ID, t, balance)
		}
	}
	return nil
}

// termAmounts prefers the student's calculated (post-concession) fee from the
// schedule; without a schedule the record's cached nominal amounts apply.
func (s *LateFeeService) termAmounts(student *models.Student, rec *models.FeeReminder) ([models.NumTerms]float64, error) {
	schedule, err := s.Schedules.GetFeeSchedule(student.Course, student.AcademicYear, student.YearOfStudy)
	if err != nil {
		return [models.NumTerms]float64{}, fmt.Errorf("fee schedule lookup failed: %v", err)
	}
	if schedule != nil {
		return schedule.CalculatedTermAmounts(student.Concession), nil
	}

	var amounts [models.NumTerms]float64
	for t := 0; t < models.NumTerms; t++ {
		amounts[t] = rec.Terms[t].FeeAmount
	}
	return amounts, nil
}

func (s *LateFeeService) paidByTerm(student *models.Student) ([models.NumTerms]float64, error) {
	var totals [models.NumTerms]float64

	payments, err := s.Payments.ListSuccessfulPayments(student.ID, student.AcademicYear, models.PaymentTypeHostelFee)
	if err != nil {
		return totals, err
	}
	for _, p := range payments {
		if p.Term >= 1 && p.Term <= models.NumTerms {
			totals[p.Term-1] += p.Amount
		}
	}
	return totals, nil
}

// dueDateReached reports whether now's calendar date is on or after the due
// date's. Comparing year/month/day directly keeps the check correct when the
// clock and the stored date carry different time zones (the server runs in
// local time while DATE columns scan back as UTC midnights).
func dueDateReached(now, due time.Time) bool {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := due.Date()
	if y1 != y2 {
		return y1 > y2
	}
	if m1 != m2 {
		return m1 > m2
	}
	return d1 >= d2
}
