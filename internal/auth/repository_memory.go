package auth

import (
	"strings"
	"sync"
	"time"
)

// InMemoryRepository backs the handlers in tests, no sqlite needed.
type InMemoryRepository struct {
	mu        sync.Mutex
	employees map[string]*Employee // by id
	sessions  map[string]*Session
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		employees: make(map[string]*Employee),
		sessions:  make(map[string]*Session),
	}
}

func (r *InMemoryRepository) CreateEmployee(e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.employees[cp.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetEmployeeByID(id string) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *InMemoryRepository) GetEmployeeByEmail(email string) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) CreateSession(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[cp.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetSession(id string, now time.Time) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *InMemoryRepository) DeleteSession(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *InMemoryRepository) DeleteEmployeeSessions(employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.EmployeeID == employeeID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *InMemoryRepository) DeleteExpiredSessions(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}
