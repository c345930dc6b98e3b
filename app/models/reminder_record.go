package models

import "time"

// TermReminder is the per-term slice of a FeeReminder: the cached due date
// and fee amount, the authoritative paid/unpaid flag, the visibility pulse,
// and the late-fee ledger.
type TermReminder struct {
	DueDate        time.Time  `json:"due_date"`
	FeeAmount      float64    `json:"fee_amount"`
	Status         FeeStatus  `json:"status"`
	Visible        bool       `json:"visible"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	LateFeeApplied bool       `json:"late_fee_applied"`
	LateFeeAccrued float64    `json:"late_fee_accrued"`
}

// FeeReminder is the one persistent reminder record per (student, academic
// year). Due dates and fee amounts are cached at creation and only change
// through an explicit recalculation pass; fee status is overwritten by the
// payment reconciler. LateFeeApplied is monotonic and never reverts.
type FeeReminder struct {
	ID               string                 `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID        string                 `json:"student_id" gorm:"not null;index;type:uuid"`
	AcademicYear     string                 `json:"academic_year" gorm:"not null;index"`
	RegistrationDate time.Time              `json:"registration_date" gorm:"not null;type:date"`
	Terms            [NumTerms]TermReminder `json:"terms" gorm:"-"`
	CurrentLevel     int                    `json:"current_level" gorm:"default:0"`
	IsActive         bool                   `json:"is_active" gorm:"default:true;index"`
	CreatedAt        time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time              `json:"updated_at" gorm:"autoUpdateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// ComputeCurrentLevel returns the highest term index currently visible, or 0
// if no reminder is visible.
func (r *FeeReminder) ComputeCurrentLevel() int {
	for t := NumTerms; t >= 1; t-- {
		if r.Terms[t-1].Visible {
			return t
		}
	}
	return 0
}

// UnpaidTerms returns the 1-based indexes of terms still unpaid.
func (r *FeeReminder) UnpaidTerms() []int {
	var terms []int
	for t := 1; t <= NumTerms; t++ {
		if r.Terms[t-1].Status != FeePaid {
			terms = append(terms, t)
		}
	}
	return terms
}
