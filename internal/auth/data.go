package auth

import (
	"database/sql"
	"time"
)

// sqliteRepository provides access to auth-related database operations
type sqliteRepository struct {
	db *sql.DB
}

// NewRepository creates a repository over the auth database
func NewRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// --- Employee Operations ---

func (r *sqliteRepository) CreateEmployee(e *Employee) error {
	_, err := r.db.Exec(`
		INSERT INTO employees (id, name, email, phone, password_hash) VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Name, e.Email, e.Phone, e.PasswordHash)
	return err
}

func (r *sqliteRepository) GetEmployeeByID(id string) (*Employee, error) {
	var e Employee
	err := r.db.QueryRow(`
		SELECT id, name, email, phone, password_hash, created_at
		FROM employees WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.PasswordHash, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *sqliteRepository) GetEmployeeByEmail(email string) (*Employee, error) {
	var e Employee
	err := r.db.QueryRow(`
		SELECT id, name, email, phone, password_hash, created_at
		FROM employees WHERE email = ? COLLATE NOCASE
	`, email).Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.PasswordHash, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// --- Session Operations ---

func (r *sqliteRepository) CreateSession(s *Session) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions (id, employee_id, expires_at) VALUES (?, ?, ?)
	`, s.ID, s.EmployeeID, s.ExpiresAt)
	return err
}

func (r *sqliteRepository) GetSession(id string, now time.Time) (*Session, error) {
	var s Session
	err := r.db.QueryRow(`
		SELECT id, employee_id, expires_at, created_at
		FROM sessions
		WHERE id = ? AND expires_at > ?
	`, id, now).Scan(&s.ID, &s.EmployeeID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) DeleteSession(id string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

func (r *sqliteRepository) DeleteEmployeeSessions(employeeID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE employee_id = ?", employeeID)
	return err
}

func (r *sqliteRepository) DeleteExpiredSessions(now time.Time) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", now)
	return err
}
