package auth

import (
	"errors"
	"time"
)

// Employee is a portal account. Accounts are created at registration and
// immutable afterwards; the employee id is the key for all per-user state.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"createdAt"`
}

// Session represents a server-side user session
type Session struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrDuplicateID        = errors.New("an account with this employee id already exists")
	ErrMissingFields      = errors.New("missing required fields")
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
