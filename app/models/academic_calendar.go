package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CustomTime allows parsing dates in YYYY-MM-DD format
type CustomTime struct {
	time.Time
}

// UnmarshalJSON parses dates in YYYY-MM-DD format
func (ct *CustomTime) UnmarshalJSON(data []byte) error {
	// Handle null or empty
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		ct.Time = time.Time{}
		return nil
	}

	// Remove quotes
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}

	ct.Time = t
	return nil
}

// MarshalJSON formats dates in YYYY-MM-DD format
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, ct.Time.Format("2006-01-02"))), nil
}

// Scan implements the Scanner interface for database reading
func (ct *CustomTime) Scan(value interface{}) error {
	if value == nil {
		ct.Time = time.Time{}
		return nil
	}

	if t, ok := value.(time.Time); ok {
		ct.Time = t
		return nil
	}

	return fmt.Errorf("cannot scan %T into CustomTime", value)
}

// Value implements the Valuer interface for database writing
func (ct CustomTime) Value() (driver.Value, error) {
	return ct.Time, nil
}

// AcademicCalendar holds the start/end dates of one semester of a course's
// academic year. The due-date resolver anchors term offsets to StartDate.
type AcademicCalendar struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Course       string     `json:"course" gorm:"not null;index" validate:"required"`
	AcademicYear string     `json:"academic_year" gorm:"not null;index" validate:"required"`
	Semester     Semester   `json:"semester" gorm:"not null;type:smallint" validate:"required,oneof=1 2"`
	StartDate    CustomTime `json:"start_date" gorm:"not null;type:date" validate:"required"`
	EndDate      CustomTime `json:"end_date" gorm:"type:date"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
