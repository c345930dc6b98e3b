package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

func TestReconcileStudentMarksPaidTerms(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	rec := unpaidReminder("rem-1", student.ID)
	now := date(2024, time.June, 6)
	rec.Terms[0].Visible = true
	rec.Terms[0].IssuedAt = &now
	rec.CurrentLevel = 1
	store.addReminder(rec)

	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 24000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc := &ReconcileService{Reminders: store, Payments: store}
	require.NoError(t, svc.ReconcileStudent(student.ID, "2024-25"))

	got := store.reminder("rem-1")
	assert.Equal(t, models.FeePaid, got.Terms[0].Status)
	assert.False(t, got.Terms[0].Visible, "paid term hides immediately, before the pulse expires")
	assert.Equal(t, 0, got.CurrentLevel)
	assert.Equal(t, models.FeeUnpaid, got.Terms[1].Status)
}

func TestReconcileIgnoresPendingAndForeignPayments(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.addReminder(unpaidReminder("rem-1", student.ID))

	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 24000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentPending,
	})
	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 2,
		Amount: 5000, PaymentType: models.PaymentTypeMessFee, Status: models.PaymentCompleted,
	})

	svc := &ReconcileService{Reminders: store, Payments: store}
	require.NoError(t, svc.ReconcileStudent(student.ID, "2024-25"))

	got := store.reminder("rem-1")
	assert.Equal(t, models.FeeUnpaid, got.Terms[0].Status)
	assert.Equal(t, models.FeeUnpaid, got.Terms[1].Status)
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.addReminder(unpaidReminder("rem-1", student.ID))

	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 2,
		Amount: 18000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc := &ReconcileService{Reminders: store, Payments: store}
	require.NoError(t, svc.ReconcileStudent(student.ID, "2024-25"))
	first := store.reminder("rem-1")

	require.NoError(t, svc.ReconcileStudent(student.ID, "2024-25"))
	assert.Equal(t, first, store.reminder("rem-1"))
}

func TestReconcileRunBatch(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.addReminder(unpaidReminder("rem-1", student.ID))

	orphan := unpaidReminder("rem-orphan", "missing")
	store.addReminder(orphan)

	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 24000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc := &ReconcileService{Reminders: store, Payments: store}
	summary := svc.Run()

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, models.FeePaid, store.reminder("rem-1").Terms[0].Status)
}
