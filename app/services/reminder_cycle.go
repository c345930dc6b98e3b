package services

import (
	"fmt"
	"log"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// reminderVisibleFor is the visibility pulse: an issued reminder auto-hides
// after this long, paid or not.
const reminderVisibleFor = 3 * 24 * time.Hour

// ReminderCycleService advances the reminder visibility state machine for
// every active record and fans out notifications on the enabled channels.
type ReminderCycleService struct {
	Reminders     ReminderStore
	Students      StudentDirectory
	Policies      PolicyStore
	Notifications NotificationLog
	Push          PushSender
	Email         EmailSender
	SMS           SMSSender

	Now func() time.Time
}

func (s *ReminderCycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CycleSummary reports the outcome of one reminder pass.
type CycleSummary struct {
	Processed int `json:"processed"`
	Shown     int `json:"shown"`
	Hidden    int `json:"hidden"`
	Errors    int `json:"errors"`
}

// Run executes one reminder pass over all active records. Each record is
// evaluated independently; transition guards are applied against persisted
// state via conditional updates, so re-running the pass in the same window
// never double-dispatches, and per-record errors never abort the batch.
func (s *ReminderCycleService) Run() CycleSummary {
	var summary CycleSummary
	now := s.now()

	reminders, err := s.Reminders.ListActiveReminders()
	if err != nil {
		log.Printf("Reminder cycle: failed to list records: %v", err)
		summary.Errors++
		return summary
	}

	for _, rec := range reminders {
		summary.Processed++
		if err := s.processRecord(rec, now, &summary); err != nil {
			log.Printf("Reminder cycle: skipping record %s: %v", rec.ID, err)
			summary.Errors++
		}
	}

	log.Printf("Reminder cycle completed: %d processed, %d shown, %d hidden, %d errors",
		summary.Processed, summary.Shown, summary.Hidden, summary.Errors)
	return summary
}

func (s *ReminderCycleService) processRecord(rec *models.FeeReminder, now time.Time, summary *CycleSummary) error {
	student, err := s.Students.GetStudent(rec.StudentID)
	if err != nil {
		return fmt.Errorf("student %s not found: %v", rec.StudentID, err)
	}

	channels := s.channelsFor(student)

	for t := 1; t <= models.NumTerms; t++ {
		term := rec.Terms[t-1]

		if !term.Visible {
			// Hidden -> Visible fires once the due date passes while unpaid.
			if term.Status == models.FeeUnpaid && !now.Before(term.DueDate) {
				won, err := s.Reminders.MarkVisible(rec.ID, t, now)
				if err != nil {
					return fmt.Errorf("term %d visibility update failed: %v", t, err)
				}
				if won {
					summary.Shown++
					s.dispatch(student, rec, t, channels)
				}
			}
			continue
		}

		// Visible -> Hidden after the pulse window, regardless of payment.
		if term.IssuedAt != nil && now.Sub(*term.IssuedAt) > reminderVisibleFor {
			hidden, err := s.Reminders.Hide(rec.ID, t)
			if err != nil {
				return fmt.Errorf("term %d hide failed: %v", t, err)
			}
			if hidden {
				summary.Hidden++
			}
		}
	}
	return nil
}

// channelsFor returns the post-due channel toggles from the student's policy.
// Students without a policy get every channel, matching the fallback nature
// of their due dates.
func (s *ReminderCycleService) channelsFor(student *models.Student) models.ChannelToggles {
	policy, err := s.Policies.GetPolicy(student.Course, student.AcademicYear, student.YearOfStudy)
	if err != nil {
		log.Printf("Reminder cycle: policy lookup failed for student %s: %v", student.ID, err)
	}
	if policy == nil {
		return models.ChannelToggles{Push: true, Email: true, SMS: true}
	}
	return policy.PostChannels
}

// dispatch sends the reminder on every enabled channel and records the in-app
// notification. Each channel fails independently; failures are logged and do
// not roll back the visibility transition.
func (s *ReminderCycleService) dispatch(student *models.Student, rec *models.FeeReminder, term int, channels models.ChannelToggles) {
	title := fmt.Sprintf("Hostel Fee Reminder: Term %d", term)
	message := fmt.Sprintf("Dear %s, your hostel fee for term %d (₹%.0f) was due on %s. Please clear the balance at the earliest.",
		student.FullName(), term, rec.Terms[term-1].FeeAmount, rec.Terms[term-1].DueDate.Format("02 Jan 2006"))

	if channels.Push && s.Push != nil {
		if err := s.Push.SendPush(student, title, message); err != nil {
			log.Printf("Push send failed for student %s term %d: %v", student.ID, term, err)
		}
	}
	if channels.Email && s.Email != nil {
		if err := s.Email.SendEmail(student, title, message); err != nil {
			log.Printf("Email send failed for student %s term %d: %v", student.ID, term, err)
		}
	}
	if channels.SMS && s.SMS != nil {
		if err := s.SMS.SendSMS(student, message); err != nil {
			log.Printf("SMS send failed for student %s term %d: %v", student.ID, term, err)
		}
	}

	if s.Notifications != nil {
		n := &models.Notification{
			StudentID: student.ID,
			Type:      models.NotificationFeeReminder,
			Term:      term,
			Title:     title,
			Message:   message,
		}
		if err := s.Notifications.CreateNotification(n); err != nil {
			log.Printf("In-app notification failed for student %s term %d: %v", student.ID, term, err)
		}
	}
}
