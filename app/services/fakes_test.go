package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// memStore is an in-memory Storage with the same conditional-update semantics
// as the SQL store: reads return copies, and MarkVisible / Hide /
// ApplyLateFee only fire while their guards hold on stored state.
type memStore struct {
	mu            sync.Mutex
	students      map[string]*models.Student
	semStarts     map[string]time.Time
	policies      map[string]*models.FeeReminderPolicy
	schedules     map[string]*models.HostelFeeSchedule
	payments      []*models.Payment
	reminders     map[string]*models.FeeReminder
	notifications []*models.Notification
	nextID        int
}

func newMemStore() *memStore {
	return &memStore{
		students:  make(map[string]*models.Student),
		semStarts: make(map[string]time.Time),
		policies:  make(map[string]*models.FeeReminderPolicy),
		schedules: make(map[string]*models.HostelFeeSchedule),
		reminders: make(map[string]*models.FeeReminder),
	}
}

func cohortKey(course, academicYear string, yearOfStudy int) string {
	return fmt.Sprintf("%s|%s|%d", course, academicYear, yearOfStudy)
}

func (m *memStore) addStudent(s *models.Student) {
	m.students[s.ID] = s
}

func (m *memStore) setSemesterStart(course, academicYear string, sem models.Semester, start time.Time) {
	m.semStarts[fmt.Sprintf("%s|%s|%d", course, academicYear, sem)] = start
}

func (m *memStore) setPolicy(p *models.FeeReminderPolicy) {
	m.policies[cohortKey(p.Course, p.AcademicYear, p.YearOfStudy)] = p
}

func (m *memStore) setSchedule(s *models.HostelFeeSchedule) {
	m.schedules[cohortKey(s.Course, s.AcademicYear, s.YearOfStudy)] = s
}

func (m *memStore) addPayment(p *models.Payment) {
	m.payments = append(m.payments, p)
}

func (m *memStore) addReminder(r *models.FeeReminder) {
	cp := *r
	m.reminders[r.ID] = &cp
}

func (m *memStore) reminder(id string) *models.FeeReminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.reminders[id]
	return &cp
}

func (m *memStore) GetStudent(id string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s not found", id)
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) ListActiveStudents() ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Student
	for _, s := range m.students {
		if s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) GetSemesterStart(course, academicYear string, sem models.Semester) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if start, ok := m.semStarts[fmt.Sprintf("%s|%s|%d", course, academicYear, sem)]; ok {
		cp := start
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetPolicy(course, academicYear string, yearOfStudy int) (*models.FeeReminderPolicy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.policies[cohortKey(course, academicYear, yearOfStudy)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetFeeSchedule(course, academicYear string, yearOfStudy int) (*models.HostelFeeSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[cohortKey(course, academicYear, yearOfStudy)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListSuccessfulPayments(studentID, academicYear, paymentType string) ([]*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Payment
	for _, p := range m.payments {
		if p.StudentID == studentID && p.AcademicYear == academicYear &&
			p.PaymentType == paymentType && p.Status == models.PaymentCompleted {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) GetReminder(studentID, academicYear string) (*models.FeeReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reminders {
		if r.StudentID == studentID && r.AcademicYear == academicYear {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListActiveReminders() ([]*models.FeeReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.FeeReminder
	for _, r := range m.reminders {
		if r.IsActive {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) CreateReminder(r *models.FeeReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = fmt.Sprintf("rem-%d", m.nextID)
	r.IsActive = true
	for i := range r.Terms {
		r.Terms[i].Status = models.FeeUnpaid
	}
	cp := *r
	m.reminders[r.ID] = &cp
	return nil
}

func (m *memStore) UpdateReminderSchedule(id string, dueDates [models.NumTerms]time.Time, amounts [models.NumTerms]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return fmt.Errorf("reminder %s not found", id)
	}
	for t := 0; t < models.NumTerms; t++ {
		r.Terms[t].DueDate = dueDates[t]
		r.Terms[t].FeeAmount = amounts[t]
	}
	return nil
}

func (m *memStore) MarkVisible(id string, term int, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return false, fmt.Errorf("reminder %s not found", id)
	}
	tr := &r.Terms[term-1]
	if !r.IsActive || tr.Visible || tr.Status != models.FeeUnpaid {
		return false, nil
	}
	tr.Visible = true
	issued := at
	tr.IssuedAt = &issued
	if term > r.CurrentLevel {
		r.CurrentLevel = term
	}
	return true, nil
}

func (m *memStore) Hide(id string, term int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return false, fmt.Errorf("reminder %s not found", id)
	}
	if !r.Terms[term-1].Visible {
		return false, nil
	}
	r.Terms[term-1].Visible = false
	r.CurrentLevel = r.ComputeCurrentLevel()
	return true, nil
}

func (m *memStore) ApplyLateFee(id string, term int, amount float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return false, fmt.Errorf("reminder %s not found", id)
	}
	tr := &r.Terms[term-1]
	if !r.IsActive || tr.LateFeeApplied {
		return false, nil
	}
	tr.LateFeeApplied = true
	tr.LateFeeAccrued += amount
	return true, nil
}

func (m *memStore) SetTermStatuses(id string, paid [models.NumTerms]bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return fmt.Errorf("reminder %s not found", id)
	}
	for t := 0; t < models.NumTerms; t++ {
		if paid[t] {
			r.Terms[t].Status = models.FeePaid
			r.Terms[t].Visible = false
		} else {
			r.Terms[t].Status = models.FeeUnpaid
		}
	}
	r.CurrentLevel = r.ComputeCurrentLevel()
	return nil
}

func (m *memStore) DeactivateReminder(studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reminders {
		if r.StudentID == studentID {
			r.IsActive = false
		}
	}
	return nil
}

func (m *memStore) CreateNotification(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	n.ID = fmt.Sprintf("notif-%d", m.nextID)
	cp := *n
	m.notifications = append(m.notifications, &cp)
	return nil
}

func (m *memStore) notificationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}

// fakeSender counts channel sends and optionally fails.
type fakeSender struct {
	mu     sync.Mutex
	pushes int
	emails int
	texts  int
	err    error
}

func (f *fakeSender) SendPush(*models.Student, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.pushes++
	return nil
}

func (f *fakeSender) SendEmail(*models.Student, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.emails++
	return nil
}

func (f *fakeSender) SendSMS(*models.Student, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts++
	return nil
}

func (f *fakeSender) counts() (pushes, emails, texts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes, f.emails, f.texts
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
