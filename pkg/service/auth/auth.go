// Package auth authenticates branch employees and issues their session
// tokens.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mhgaber/branchbank/pkg/config"
	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/repository"
)

// Service verifies employee credentials and mints JWTs.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the employee's password and returns a signed HS256 token
// carrying the employee ID, name and role. Unknown employees and wrong
// passwords both come back as ErrInvalidCredentials so the response does not
// leak which one it was.
func (s *Service) Login(ctx context.Context, employeeID int64, password string) (string, error) {
	var employee *domain.Employee
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		employees, err := uow.EmployeeRepository()
		if err != nil {
			return err
		}
		employee, err = employees.Get(ctx, employeeID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("failed login attempt", "employee_id", employeeID)
		return "", domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(employee.ID, 10),
		"name": employee.FullName,
		"role": employee.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", err
	}

	s.logger.Info("employee logged in", "employee_id", employeeID, "role", employee.Role)
	return signed, nil
}

// HashPassword returns the bcrypt hash stored for an employee password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
