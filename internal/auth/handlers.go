package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the account endpoints
type Handler struct {
	service  *Service
	sessions *SessionStore
}

func NewHandler(service *Service, sessions *SessionStore) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Register creates an account and opens a session for it
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	employee, err := h.service.Register(req)
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	session, err := h.sessions.CreateSession(employee.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.sessions.SetSessionCookie(c, session.ID)
	c.JSON(http.StatusCreated, employee)
}

// Login verifies credentials and opens a session
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	employee, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	session, err := h.sessions.CreateSession(employee.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.sessions.SetSessionCookie(c, session.ID)
	c.JSON(http.StatusOK, employee)
}

// Logout deletes the current session
func (h *Handler) Logout(c *gin.Context) {
	sessionID, err := h.sessions.GetSessionFromCookie(c)
	if err == nil && sessionID != "" {
		_ = h.sessions.DeleteSession(sessionID)
	}
	h.sessions.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the account behind the current session
func (h *Handler) Me(c *gin.Context) {
	employee := CurrentEmployee(c)
	if employee == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, employee)
}
