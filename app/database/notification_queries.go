package database

import (
	"database/sql"
	"log"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// CreateNotification records an in-app notification for a student.
func CreateNotification(db *sql.DB, n *models.Notification) error {
	query := `INSERT INTO notifications (student_id, type, term, title, message)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`

	return db.QueryRow(query, n.StudentID, string(n.Type), n.Term, n.Title, n.Message).
		Scan(&n.ID, &n.CreatedAt)
}

// ListNotificationsByStudent returns a student's notifications, newest first.
func ListNotificationsByStudent(db *sql.DB, studentID string, unreadOnly bool) ([]*models.Notification, error) {
	query := `SELECT id, student_id, type, COALESCE(term, 0), title, message, is_read, created_at
			  FROM notifications WHERE student_id = $1`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var nType string
		if err := rows.Scan(&n.ID, &n.StudentID, &nType, &n.Term, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			log.Printf("Skipping unreadable notification row: %v", err)
			continue
		}
		n.Type = models.NotificationType(nType)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	return err
}
