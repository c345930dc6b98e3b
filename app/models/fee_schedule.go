package models

import (
	"math"
	"time"
)

// Term share of the yearly hostel fee: 40% / 30% / 30%.
var termShares = [NumTerms]float64{0.40, 0.30, 0.30}

// HostelFeeSchedule holds the yearly hostel fee for one (course, academic
// year, year of study) cohort. Term amounts are derived from TotalAmount.
type HostelFeeSchedule struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Course       string     `json:"course" gorm:"not null" validate:"required"`
	AcademicYear string     `json:"academic_year" gorm:"not null" validate:"required"`
	YearOfStudy  int        `json:"year_of_study" gorm:"not null" validate:"required,min=1,max=6"`
	TotalAmount  float64    `json:"total_amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// TermAmounts splits the yearly total into the three term amounts. Terms 1
// and 2 are rounded to the nearest rupee; term 3 takes the remainder so the
// three amounts always sum to the total.
func (s *HostelFeeSchedule) TermAmounts() [NumTerms]float64 {
	return SplitTermAmounts(s.TotalAmount)
}

// CalculatedTermAmounts splits the total after subtracting a per-student
// concession. A concession at or above the total yields all-zero terms.
func (s *HostelFeeSchedule) CalculatedTermAmounts(concession float64) [NumTerms]float64 {
	total := s.TotalAmount - concession
	if total < 0 {
		total = 0
	}
	return SplitTermAmounts(total)
}

// SplitTermAmounts applies the 40/30/30 split with the rounding remainder
// assigned to the last term.
func SplitTermAmounts(total float64) [NumTerms]float64 {
	var amounts [NumTerms]float64
	amounts[0] = math.Round(total * termShares[0])
	amounts[1] = math.Round(total * termShares[1])
	amounts[2] = total - amounts[0] - amounts[1]
	return amounts
}
