package auth

import "time"

// Repository defines the data-access contract for accounts and sessions.
// Service and SessionStore depend only on this interface.
type Repository interface {
	CreateEmployee(e *Employee) error
	GetEmployeeByID(id string) (*Employee, error)
	GetEmployeeByEmail(email string) (*Employee, error)

	CreateSession(s *Session) error
	GetSession(id string, now time.Time) (*Session, error)
	DeleteSession(id string) error
	DeleteEmployeeSessions(employeeID string) error
	DeleteExpiredSessions(now time.Time) error
}
