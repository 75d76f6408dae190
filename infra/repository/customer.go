package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhgaber/branchbank/pkg/domain"
	repo "github.com/mhgaber/branchbank/pkg/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the customers store over the given session.
func NewCustomerRepository(db *gorm.DB) repo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m := Customer{
		FullName:    customer.FullName,
		DateOfBirth: customer.DateOfBirth,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		CreatedAt:   customer.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	var m Customer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"full_name":     customer.FullName,
			"date_of_birth": customer.DateOfBirth,
			"email":         customer.Email,
			"phone":         customer.Phone,
			"address":       customer.Address,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) ListSummaries(ctx context.Context) ([]*domain.CustomerSummary, error) {
	return r.summaries(ctx, "")
}

func (r *customerRepository) SearchByName(ctx context.Context, fullName string) ([]*domain.CustomerSummary, error) {
	return r.summaries(ctx, fullName)
}

func (r *customerRepository) summaries(ctx context.Context, nameFilter string) ([]*domain.CustomerSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&Customer{}).
		Select(`customers.id AS customer_id,
			customers.full_name,
			customers.email,
			customers.phone,
			customers.address,
			COUNT(accounts.id) AS total_accounts,
			COALESCE(SUM(accounts.balance), 0) AS total_balance`).
		Joins("LEFT JOIN accounts ON accounts.customer_id = customers.id").
		Group("customers.id").
		Order("customers.id ASC")
	if nameFilter != "" {
		query = query.Where("customers.full_name LIKE ?", "%"+nameFilter+"%")
	}

	var out []*domain.CustomerSummary
	if err := query.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
