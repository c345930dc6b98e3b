package models

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationFeeReminder NotificationType = "fee_reminder"
	NotificationGeneral     NotificationType = "general"
)

// Notification is the in-app notification record created for a student when
// a fee reminder becomes visible, independent of push delivery.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID string           `json:"student_id" gorm:"not null;index;type:uuid"`
	Type      NotificationType `json:"type" gorm:"not null;type:varchar(30)"`
	Term      int              `json:"term,omitempty"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"not null;type:text"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}
