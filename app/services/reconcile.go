package services

import (
	"fmt"
	"log"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// ReconcileService recomputes each term's paid/unpaid status from the payment
// ledger. The recomputation is a full overwrite, so it is idempotent and safe
// to re-run at any time.
type ReconcileService struct {
	Reminders ReminderStore
	Payments  PaymentLedger
}

// ReconcileStudent rebuilds the student's term fee statuses from scratch: a
// term is paid iff at least one successful hostel-fee payment exists for it.
// Terms that became paid have their reminders hidden immediately, independent
// of the pulse window.
func (s *ReconcileService) ReconcileStudent(studentID, academicYear string) error {
	rec, err := s.Reminders.GetReminder(studentID, academicYear)
	if err != nil {
		return fmt.Errorf("reminder lookup failed: %v", err)
	}
	if rec == nil {
		return fmt.Errorf("no reminder record for student %s in %s", studentID, academicYear)
	}

	payments, err := s.Payments.ListSuccessfulPayments(studentID, academicYear, models.PaymentTypeHostelFee)
	if err != nil {
		return fmt.Errorf("payment lookup failed: %v", err)
	}

	var paid [models.NumTerms]bool
	for _, p := range payments {
		if p.Term >= 1 && p.Term <= models.NumTerms {
			paid[p.Term-1] = true
		}
	}

	if err := s.Reminders.SetTermStatuses(rec.ID, paid); err != nil {
		return fmt.Errorf("status update failed: %v", err)
	}
	return nil
}

// ReconcileSummary reports the outcome of a batch reconciliation pass.
type ReconcileSummary struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// Run reconciles every active reminder record against the ledger.
func (s *ReconcileService) Run() ReconcileSummary {
	var summary ReconcileSummary

	reminders, err := s.Reminders.ListActiveReminders()
	if err != nil {
		log.Printf("Reconciliation: failed to list records: %v", err)
		summary.Errors++
		return summary
	}

	for _, rec := range reminders {
		summary.Processed++
		if err := s.ReconcileStudent(rec.StudentID, rec.AcademicYear); err != nil {
			log.Printf("Reconciliation: skipping record %s: %v", rec.ID, err)
			summary.Errors++
		}
	}

	log.Printf("Reconciliation completed: %d processed, %d errors", summary.Processed, summary.Errors)
	return summary
}
