package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

func newLateFeeService(store *memStore, now time.Time) *LateFeeService {
	return &LateFeeService{
		Reminders: store,
		Students:  store,
		Policies:  store,
		Schedules: store,
		Payments:  store,
		Resolver:  newDueDateService(store, now),
		Now:       fixedClock(now),
	}
}

func overdueFixture(store *memStore) *models.Student {
	student := testStudent()
	store.addStudent(student)
	store.setPolicy(allChannelsPolicy())
	store.setSemesterStart("B.Tech", "2024-25", models.Semester1, date(2024, time.June, 1))
	store.setSemesterStart("B.Tech", "2024-25", models.Semester2, date(2024, time.December, 1))
	store.setSchedule(&models.HostelFeeSchedule{
		Course: "B.Tech", AcademicYear: "2024-25", YearOfStudy: 2, TotalAmount: 60000,
	})

	rec := unpaidReminder("rem-1", student.ID)
	rec.Terms[0].DueDate = date(2024, time.June, 6)
	rec.Terms[1].DueDate = date(2024, time.August, 30)
	rec.Terms[2].DueDate = date(2024, time.December, 31)
	store.addReminder(rec)
	return student
}

func TestLateFeeAppliedOncePerTerm(t *testing.T) {
	store := newMemStore()
	student := overdueFixture(store)

	// Partial payment leaves a positive balance on term 1.
	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 23000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc := newLateFeeService(store, date(2024, time.June, 7))

	summary := svc.Run()
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Applied)

	got := store.reminder("rem-1")
	assert.True(t, got.Terms[0].LateFeeApplied)
	assert.Equal(t, 500.0, got.Terms[0].LateFeeAccrued)
	assert.False(t, got.Terms[1].LateFeeApplied, "term 2 is not yet due")

	// A second run the same day leaves the accrued amount unchanged.
	summary = svc.Run()
	assert.Equal(t, 0, summary.Applied)
	assert.Equal(t, 500.0, store.reminder("rem-1").Terms[0].LateFeeAccrued)
}

func TestLateFeeAppliedOnDueDate(t *testing.T) {
	store := newMemStore()
	overdueFixture(store)

	// Date-only comparison: the fee posts on the due date itself, whatever the
	// time of day the pass runs at.
	now := time.Date(2024, time.June, 6, 23, 45, 0, 0, time.UTC)
	svc := newLateFeeService(store, now)

	summary := svc.Run()
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, store.reminder("rem-1").Terms[0].LateFeeApplied)
}

func TestLateFeeDueDateComparisonAcrossTimeZones(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	// Due dates scan back from DATE columns as UTC midnights. The comparison
	// must go by calendar date, not instants: 10:00 IST on the due date is
	// still 04:30 UTC the same day, and the fee posts.
	store := newMemStore()
	overdueFixture(store)

	svc := newLateFeeService(store, time.Date(2024, time.June, 6, 10, 0, 0, 0, ist))
	summary := svc.Run()
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, store.reminder("rem-1").Terms[0].LateFeeApplied)

	// Late evening local time the day before stays before the due date even
	// though UTC has not rolled over either.
	store = newMemStore()
	overdueFixture(store)

	svc = newLateFeeService(store, time.Date(2024, time.June, 5, 23, 0, 0, 0, ist))
	summary = svc.Run()
	assert.Equal(t, 0, summary.Applied)
	assert.False(t, store.reminder("rem-1").Terms[0].LateFeeApplied)
}

func TestLateFeeNotAppliedBeforeDueDate(t *testing.T) {
	store := newMemStore()
	overdueFixture(store)

	svc := newLateFeeService(store, date(2024, time.June, 5))

	summary := svc.Run()
	assert.Equal(t, 0, summary.Applied)
	assert.False(t, store.reminder("rem-1").Terms[0].LateFeeApplied)
}

func TestLateFeeSkipsSettledBalance(t *testing.T) {
	store := newMemStore()
	student := overdueFixture(store)

	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 24000, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc := newLateFeeService(store, date(2024, time.June, 7))

	summary := svc.Run()
	assert.Equal(t, 0, summary.Applied)
	assert.False(t, store.reminder("rem-1").Terms[0].LateFeeApplied)
}

func TestLateFeeMonotonicAfterPayment(t *testing.T) {
	store := newMemStore()
	student := overdueFixture(store)

	svc := newLateFeeService(store, date(2024, time.June, 7))
	svc.Run()
	assert.True(t, store.reminder("rem-1").Terms[0].LateFeeApplied)

	// Settling the term afterwards does not revert the flag or the accrual.
	store.addPayment(&models.Payment{
		StudentID: student.ID, AcademicYear: "2024-25", Term: 1,
		Amount: 24500, PaymentType: models.PaymentTypeHostelFee, Status: models.PaymentCompleted,
	})

	svc.Run()
	got := store.reminder("rem-1")
	assert.True(t, got.Terms[0].LateFeeApplied)
	assert.Equal(t, 500.0, got.Terms[0].LateFeeAccrued)
}

func TestLateFeeUsesPostConcessionAmount(t *testing.T) {
	store := newMemStore()
	student := overdueFixture(store)

	// Full concession zeroes the calculated fee, so there is never a balance.
	student.Concession = 60000
	store.addStudent(student)

	svc := newLateFeeService(store, date(2024, time.June, 7))

	summary := svc.Run()
	assert.Equal(t, 0, summary.Applied)
}

func TestLateFeeZeroConfigSkipsTerm(t *testing.T) {
	store := newMemStore()
	overdueFixture(store)

	policy := allChannelsPolicy()
	policy.Term1.LateFee = 0
	store.setPolicy(policy)

	svc := newLateFeeService(store, date(2024, time.June, 7))

	summary := svc.Run()
	assert.Equal(t, 0, summary.Applied)
	assert.False(t, store.reminder("rem-1").Terms[0].LateFeeApplied)
}

func TestLateFeeNoPolicySkipsStudent(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	rec := unpaidReminder("rem-1", student.ID)
	rec.Terms[0].DueDate = date(2024, time.January, 6)
	store.addReminder(rec)

	svc := newLateFeeService(store, date(2024, time.February, 1))

	summary := svc.Run()
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Applied)
}
