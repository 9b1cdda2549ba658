package service

import (
	"context"
	"errors"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// CreateCustomer registers a customer from the back office, ahead of any
// booking. Emails are unique; registering one that already exists is a
// field error, not a silent merge.
func (s *customerService) CreateCustomer(ctx context.Context, in *CustomerInput) (*domain.Customer, error) {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		ve.Add("email", "is required")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if _, err := s.customerRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ve.Add("email", "is already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer := &domain.Customer{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		LicenseNumber:  in.LicenseNumber,
		LicenseCountry: in.LicenseCountry,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.customerRepo.List(ctx, query, page, pageSize)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) SetBlacklist(ctx context.Context, id int32, blacklisted bool, reason string) error {
	if blacklisted && reason == "" {
		ve := &domain.ValidationError{}
		return ve.Add("reason", "is required when blacklisting a customer")
	}
	return s.customerRepo.SetBlacklist(ctx, id, blacklisted, reason)
}
