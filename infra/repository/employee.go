package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhgaber/branchbank/pkg/domain"
	repo "github.com/mhgaber/branchbank/pkg/repository"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates the employees store over the given session.
func NewEmployeeRepository(db *gorm.DB) repo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var m Employee
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	m := Employee{
		ID:           employee.ID,
		FullName:     employee.FullName,
		Role:         employee.Role,
		BranchID:     employee.BranchID,
		PasswordHash: employee.PasswordHash,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}
