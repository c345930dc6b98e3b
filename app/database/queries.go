package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name, r.is_active
			  FROM roles r
			  JOIN user_roles ur ON ur.role_id = r.id
			  WHERE ur.user_id = $1 AND r.deleted_at IS NULL AND ur.deleted_at IS NULL`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive); err != nil {
			continue
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// CreateUser inserts a user with a hashed password and assigns the given role,
// creating the role if it does not exist yet.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, user.Email, hashed, user.FirstName, user.LastName, user.Phone).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}

	var roleID string
	err = tx.QueryRow(`SELECT id FROM roles WHERE name = $1 AND deleted_at IS NULL`, roleName).Scan(&roleID)
	if err == sql.ErrNoRows {
		err = tx.QueryRow(`INSERT INTO roles (name, is_active) VALUES ($1, true) RETURNING id`, roleName).Scan(&roleID)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve role %s: %v", roleName, err)
	}

	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
		return fmt.Errorf("failed to assign role: %v", err)
	}

	return tx.Commit()
}

func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	_, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, userID)
	return err
}

// CreateSession records a login session for auditing and revocation.
func CreateSession(db *sql.DB, session *models.Session) error {
	query := `INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)
			  RETURNING created_at`
	return db.QueryRow(query, session.ID, session.UserID, session.ExpiresAt).Scan(&session.CreatedAt)
}

// GetSession returns a session that has not expired yet, or nil.
func GetSession(db *sql.DB, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, expires_at, created_at FROM sessions
			  WHERE id = $1 AND expires_at > NOW()`

	err := db.QueryRow(query, sessionID).Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// DeleteExpiredSessions prunes sessions past their expiry.
func DeleteExpiredSessions(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= NOW()`)
	return err
}
