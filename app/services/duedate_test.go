package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

func testStudent() *models.Student {
	return &models.Student{
		ID:               "stu-1",
		RollNumber:       "21B01A0501",
		FirstName:        "Anil",
		LastName:         "Kumar",
		Course:           "B.Tech",
		YearOfStudy:      2,
		AcademicYear:     "2024-25",
		Email:            "anil@example.com",
		Phone:            "9000000001",
		RegistrationDate: models.CustomTime{Time: date(2024, time.January, 1)},
		IsActive:         true,
	}
}

func allChannelsPolicy() *models.FeeReminderPolicy {
	return &models.FeeReminderPolicy{
		ID:           "pol-1",
		Course:       "B.Tech",
		AcademicYear: "2024-25",
		YearOfStudy:  2,
		Term1:        models.TermConfig{DaysFromAnchor: 5, AnchorSemester: models.Semester1, LateFee: 500},
		Term2:        models.TermConfig{DaysFromAnchor: 90, AnchorSemester: models.Semester1, LateFee: 500},
		Term3:        models.TermConfig{DaysFromAnchor: 30, AnchorSemester: models.Semester2, LateFee: 500},
		PostChannels: models.ChannelToggles{Push: true, Email: true, SMS: true},
		IsActive:     true,
	}
}

func newDueDateService(store *memStore, now time.Time) *DueDateService {
	return &DueDateService{
		Students:  store,
		Calendar:  store,
		Policies:  store,
		Schedules: store,
		Reminders: store,
		Now:       fixedClock(now),
	}
}

func TestResolveDueDatesFallback(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	svc := newDueDateService(store, date(2024, time.January, 2))

	dueDates, err := svc.ResolveDueDates(student)
	require.NoError(t, err)

	// registrationDate + {5, 90, 210} days exactly
	assert.Equal(t, date(2024, time.January, 6), dueDates[0])
	assert.Equal(t, date(2024, time.March, 31), dueDates[1])
	assert.Equal(t, date(2024, time.July, 29), dueDates[2])
}

func TestResolveDueDatesWithPolicy(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.setPolicy(allChannelsPolicy())
	store.setSemesterStart("B.Tech", "2024-25", models.Semester1, date(2024, time.June, 1))
	store.setSemesterStart("B.Tech", "2024-25", models.Semester2, date(2024, time.December, 1))

	svc := newDueDateService(store, date(2024, time.June, 1))

	dueDates, err := svc.ResolveDueDates(student)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.June, 6), dueDates[0], "term 1 anchored to semester 1")
	assert.Equal(t, date(2024, time.August, 30), dueDates[1], "term 2 anchored to semester 1")
	assert.Equal(t, date(2024, time.December, 31), dueDates[2], "term 3 anchored to semester 2")
}

func TestResolveDueDatesSemester2FallsBackToSemester1(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.setPolicy(allChannelsPolicy())
	store.setSemesterStart("B.Tech", "2024-25", models.Semester1, date(2024, time.June, 1))
	// no semester 2 entry

	svc := newDueDateService(store, date(2024, time.June, 1))

	dueDates, err := svc.ResolveDueDates(student)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.July, 1), dueDates[2], "term 3 falls back to semester 1 start")
}

func TestResolveDueDatesNoCalendarUsesNow(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.setPolicy(allChannelsPolicy())

	now := date(2024, time.May, 10)
	svc := newDueDateService(store, now)

	dueDates, err := svc.ResolveDueDates(student)
	require.NoError(t, err)

	assert.Equal(t, now.AddDate(0, 0, 5), dueDates[0])
	assert.Equal(t, now.AddDate(0, 0, 90), dueDates[1])
	assert.Equal(t, now.AddDate(0, 0, 30), dueDates[2])
}

func TestResolveDueDatesDeterministic(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	svc := newDueDateService(store, date(2024, time.January, 2))

	first, err := svc.ResolveDueDates(student)
	require.NoError(t, err)
	second, err := svc.ResolveDueDates(student)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureReminderRecord(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)
	store.setSchedule(&models.HostelFeeSchedule{
		Course: "B.Tech", AcademicYear: "2024-25", YearOfStudy: 2, TotalAmount: 60000,
	})

	svc := newDueDateService(store, date(2024, time.January, 2))

	rec, err := svc.EnsureReminderRecord(student)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	assert.Equal(t, date(2024, time.January, 6), rec.Terms[0].DueDate)
	assert.Equal(t, [models.NumTerms]float64{24000, 18000, 18000},
		[models.NumTerms]float64{rec.Terms[0].FeeAmount, rec.Terms[1].FeeAmount, rec.Terms[2].FeeAmount})

	// Second call must return the existing record, not create another.
	again, err := svc.EnsureReminderRecord(student)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)
	assert.Len(t, store.reminders, 1)
}

func TestRecalculateAllSkipsMissingStudent(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	ok := &models.FeeReminder{ID: "rem-ok", StudentID: student.ID, AcademicYear: "2024-25", IsActive: true}
	orphan := &models.FeeReminder{ID: "rem-orphan", StudentID: "missing", AcademicYear: "2024-25", IsActive: true}
	store.addReminder(ok)
	store.addReminder(orphan)

	svc := newDueDateService(store, date(2024, time.January, 2))
	summary := svc.RecalculateAll()

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, date(2024, time.January, 6), store.reminder("rem-ok").Terms[0].DueDate)
}

func TestRecalculateAppliesPolicyEdit(t *testing.T) {
	store := newMemStore()
	student := testStudent()
	store.addStudent(student)

	rec := &models.FeeReminder{ID: "rem-1", StudentID: student.ID, AcademicYear: "2024-25", IsActive: true}
	rec.Terms[0].DueDate = date(2024, time.January, 6)
	store.addReminder(rec)

	store.setPolicy(allChannelsPolicy())
	store.setSemesterStart("B.Tech", "2024-25", models.Semester1, date(2024, time.June, 1))
	store.setSemesterStart("B.Tech", "2024-25", models.Semester2, date(2024, time.December, 1))

	svc := newDueDateService(store, date(2024, time.June, 1))

	// Cached dates persist until the explicit recalculation pass runs.
	assert.Equal(t, date(2024, time.January, 6), store.reminder("rem-1").Terms[0].DueDate)

	summary := svc.RecalculateAll()
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, date(2024, time.June, 6), store.reminder("rem-1").Terms[0].DueDate)
}

func TestBackfillReminders(t *testing.T) {
	store := newMemStore()
	store.addStudent(testStudent())

	other := testStudent()
	other.ID = "stu-2"
	other.RollNumber = "21B01A0502"
	store.addStudent(other)

	existing := &models.FeeReminder{ID: "rem-existing", StudentID: "stu-2", AcademicYear: "2024-25", IsActive: true}
	store.addReminder(existing)

	svc := newDueDateService(store, date(2024, time.January, 2))
	summary := svc.BackfillReminders()

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Created)
	assert.Len(t, store.reminders, 2)
}
