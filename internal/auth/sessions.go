package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "canteen_session"

	// DefaultSessionDuration is the default session lifetime
	DefaultSessionDuration = 7 * 24 * time.Hour // 7 days
)

// SessionStore manages server-side sessions
type SessionStore struct {
	repo            Repository
	sessionDuration time.Duration
	secureCookie    bool
}

// NewSessionStore creates a new session store
func NewSessionStore(repo Repository, sessionDuration time.Duration, secureCookie bool) *SessionStore {
	if sessionDuration == 0 {
		sessionDuration = DefaultSessionDuration
	}
	return &SessionStore{
		repo:            repo,
		sessionDuration: sessionDuration,
		secureCookie:    secureCookie,
	}
}

// CreateSession creates a new session for an employee
func (s *SessionStore) CreateSession(employeeID string) (*Session, error) {
	session := &Session{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ExpiresAt:  time.Now().Add(s.sessionDuration),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetEmployeeFromSession returns the account associated with a live session
func (s *SessionStore) GetEmployeeFromSession(sessionID string) (*Employee, error) {
	session, err := s.repo.GetSession(sessionID, time.Now())
	if err != nil || session == nil {
		return nil, err
	}
	return s.repo.GetEmployeeByID(session.EmployeeID)
}

// DeleteSession removes a session
func (s *SessionStore) DeleteSession(sessionID string) error {
	return s.repo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes all expired sessions
func (s *SessionStore) CleanupExpiredSessions() error {
	return s.repo.DeleteExpiredSessions(time.Now())
}

// SetSessionCookie sets the session cookie on the response
func (s *SessionStore) SetSessionCookie(c *gin.Context, sessionID string) {
	maxAge := int(s.sessionDuration.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		maxAge,
		"/",
		"",
		s.secureCookie,
		true, // httpOnly
	)
}

// ClearSessionCookie removes the session cookie
func (s *SessionStore) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		s.secureCookie,
		true,
	)
}

// GetSessionFromCookie retrieves the session ID from the request cookie
func (s *SessionStore) GetSessionFromCookie(c *gin.Context) (string, error) {
	return c.Cookie(SessionCookieName)
}
