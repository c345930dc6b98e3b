package models

import "time"

// TermConfig holds the due-date and late-fee configuration for one term.
type TermConfig struct {
	DaysFromAnchor int      `json:"days_from_anchor" validate:"required,min=1"`
	AnchorSemester Semester `json:"anchor_semester" validate:"required,oneof=1 2"`
	LateFee        float64  `json:"late_fee" validate:"gte=0"`
}

// ChannelToggles enables or disables each notification channel.
type ChannelToggles struct {
	Push  bool `json:"push"`
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// Any reports whether at least one channel is enabled.
func (c ChannelToggles) Any() bool {
	return c.Push || c.Email || c.SMS
}

// FeeReminderPolicy configures due dates, late fees and reminder channels for
// one (course, academic year, year of study) cohort. At most one policy may
// be active per key; editing a policy deactivates the previous row.
type FeeReminderPolicy struct {
	ID           string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Course       string `json:"course" gorm:"not null" validate:"required"`
	AcademicYear string `json:"academic_year" gorm:"not null" validate:"required"`
	YearOfStudy  int    `json:"year_of_study" gorm:"not null" validate:"required,min=1,max=6"`

	Term1 TermConfig `json:"term1" gorm:"embedded;embeddedPrefix:term1_" validate:"required"`
	Term2 TermConfig `json:"term2" gorm:"embedded;embeddedPrefix:term2_" validate:"required"`
	Term3 TermConfig `json:"term3" gorm:"embedded;embeddedPrefix:term3_" validate:"required"`

	// Reserved configuration for pre-due courtesy reminders: stored and
	// served to clients, but not yet consumed by the cycle processor, which
	// acts only on the post-due crossing. PostChannels governs its dispatch.
	PreReminderOffsets []int64        `json:"pre_reminder_offsets" gorm:"type:integer[]"`
	PreChannels        ChannelToggles `json:"pre_channels" gorm:"embedded;embeddedPrefix:pre_"`

	// Day offsets after each due date at which future escalation tiers fire;
	// reserved like the pre-due fields.
	PostReminderOffsets []int64        `json:"post_reminder_offsets" gorm:"type:integer[]"`
	PostChannels        ChannelToggles `json:"post_channels" gorm:"embedded;embeddedPrefix:post_"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Term returns the configuration for term t (1-based).
func (p *FeeReminderPolicy) Term(t int) TermConfig {
	switch t {
	case 1:
		return p.Term1
	case 2:
		return p.Term2
	default:
		return p.Term3
	}
}
