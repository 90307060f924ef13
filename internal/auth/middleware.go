package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextKeyEmployee = "auth_employee"
)

// Middleware provides authentication middleware
type Middleware struct {
	sessions *SessionStore
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *SessionStore) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireSession returns a middleware that only lets logged-in employees
// through and attaches the account to the request context.
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := m.sessions.GetSessionFromCookie(c)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not logged in",
			})
			return
		}

		employee, err := m.sessions.GetEmployeeFromSession(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to load session",
			})
			return
		}
		if employee == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session expired",
			})
			return
		}

		c.Set(ContextKeyEmployee, employee)
		c.Next()
	}
}

// CurrentEmployee returns the account attached by RequireSession, or nil.
func CurrentEmployee(c *gin.Context) *Employee {
	value, exists := c.Get(ContextKeyEmployee)
	if !exists {
		return nil
	}
	employee, ok := value.(*Employee)
	if !ok {
		return nil
	}
	return employee
}
