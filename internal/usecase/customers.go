package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
	"storefront-service/pkg/interfaces"
)

type CustomerService struct {
	repo interfaces.EntityStore
}

func NewCustomerService(repo interfaces.EntityStore) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, partitionKey, rowKey string) (*models.Customer, error) {
	return s.repo.GetCustomer(ctx, partitionKey, rowKey)
}

// Create assigns identity, validates the record and checks that the email and
// phone are not already in use. Uniqueness is a creation-time check only, not
// a storage constraint.
func (s *CustomerService) Create(ctx context.Context, customer models.Customer) (string, error) {
	if customer.PartitionKey == "" {
		customer.PartitionKey = models.CustomerPartition
	}
	if customer.RowKey == "" {
		customer.RowKey = uuid.NewString()
	}

	if err := customer.Validate(); err != nil {
		return "", err
	}

	inUse, err := s.repo.CustomerContactInUse(ctx, customer.Email, customer.Phone)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", errs.Validation("A customer with this email or phone number already exists")
	}

	if err := s.repo.InsertCustomer(ctx, customer); err != nil {
		return "", err
	}

	slog.Info("Customer created", "rowKey", customer.RowKey)
	return customer.RowKey, nil
}

func (s *CustomerService) Update(ctx context.Context, customer models.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if err := s.repo.ReplaceCustomer(ctx, customer); err != nil {
		return err
	}
	slog.Info("Customer updated", "rowKey", customer.RowKey)
	return nil
}

// Delete is gated by the referencing-order check. The repository repeats the
// check inside the delete statement, so a concurrent order creation cannot
// leave a dangling reference.
func (s *CustomerService) Delete(ctx context.Context, partitionKey, rowKey string) error {
	hasOrders, err := s.repo.HasOrdersForCustomer(ctx, rowKey)
	if err != nil {
		return err
	}
	if hasOrders {
		slog.Info("Customer has associated orders, cannot delete", "rowKey", rowKey)
		return errs.Validation("Cannot delete customer because they have associated orders")
	}

	if err := s.repo.DeleteCustomer(ctx, partitionKey, rowKey); err != nil {
		return err
	}

	slog.Info("Customer deleted", "rowKey", rowKey)
	return nil
}

func (s *CustomerService) HasOrders(ctx context.Context, rowKey string) (bool, error) {
	return s.repo.HasOrdersForCustomer(ctx, rowKey)
}
