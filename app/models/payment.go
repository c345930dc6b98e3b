package models

import "time"

// Payment represents one entry in the hostel payment ledger. Only payments
// with status completed count toward a term's fee status.
type Payment struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID     string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYear  string        `json:"academic_year" gorm:"not null;index" validate:"required"`
	Term          int           `json:"term" gorm:"not null" validate:"required,min=1,max=3"`
	Amount        float64       `json:"amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	PaymentType   string        `json:"payment_type" gorm:"not null;default:'hostel_fee';index" validate:"required,oneof=hostel_fee mess_fee other"`
	PaymentMethod string        `json:"payment_method" gorm:"type:varchar(50)"`
	Status        PaymentStatus `json:"status" gorm:"not null;default:'pending';index;type:varchar(20)"`
	TransactionID *string       `json:"transaction_id,omitempty" gorm:"index"`
	PaymentDate   time.Time     `json:"payment_date" gorm:"not null;index"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
