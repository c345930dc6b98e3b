package models

import "time"

// Student represents a hostel resident. Course, year of study and academic
// year drive the fee-policy lookup; RegistrationDate feeds the fallback
// due-date chain for students with no configured policy.
type Student struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RollNumber       string     `json:"roll_number" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName        string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName         string     `json:"last_name" gorm:"not null" validate:"required"`
	Gender           Gender     `json:"gender" gorm:"type:varchar(10)"`
	Course           string     `json:"course" gorm:"not null;index" validate:"required"`
	Branch           string     `json:"branch" gorm:"index"`
	YearOfStudy      int        `json:"year_of_study" gorm:"not null" validate:"required,min=1,max=6"`
	AcademicYear     string     `json:"academic_year" gorm:"not null;index" validate:"required"`
	RoomNumber       string     `json:"room_number" gorm:"type:varchar(20)"`
	Phone            string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Email            string     `json:"email,omitempty" gorm:"index"`
	Concession       float64    `json:"concession" gorm:"type:numeric;default:0" validate:"gte=0"`
	RegistrationDate CustomTime `json:"registration_date" gorm:"not null;type:date" validate:"required"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
