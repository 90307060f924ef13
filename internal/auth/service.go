package auth

import (
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account. Every field is required; both the email
// and the employee id must be unused.
func (s *Service) Register(req RegisterRequest) (*Employee, error) {
	if req.ID == "" || req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	if existing, err := s.repo.GetEmployeeByEmail(req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateEmail
	}
	if existing, err := s.repo.GetEmployeeByID(req.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(req.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	employee := &Employee{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateEmployee(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Login checks the credentials and returns the account.
func (s *Service) Login(email, password string) (*Employee, error) {
	employee, err := s.repo.GetEmployeeByEmail(email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(employee.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}
	return employee, nil
}
