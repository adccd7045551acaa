package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
	"storefront-service/pkg/interfaces"
)

type ProductService struct {
	repo interfaces.EntityStore
}

func NewProductService(repo interfaces.EntityStore) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, partitionKey, rowKey string) (*models.Product, error) {
	return s.repo.GetProduct(ctx, partitionKey, rowKey)
}

func (s *ProductService) Create(ctx context.Context, product models.Product) (string, error) {
	if product.PartitionKey == "" {
		product.PartitionKey = models.ProductPartition
	}
	if product.RowKey == "" {
		product.RowKey = uuid.NewString()
	}

	if err := product.Validate(); err != nil {
		return "", err
	}

	if err := s.repo.InsertProduct(ctx, product); err != nil {
		return "", err
	}

	slog.Info("Product created", "rowKey", product.RowKey)
	return product.RowKey, nil
}

func (s *ProductService) Update(ctx context.Context, product models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if err := s.repo.ReplaceProduct(ctx, product); err != nil {
		return err
	}
	slog.Info("Product updated", "rowKey", product.RowKey)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, partitionKey, rowKey string) error {
	hasOrders, err := s.repo.HasOrdersForProduct(ctx, rowKey)
	if err != nil {
		return err
	}
	if hasOrders {
		slog.Info("Product has associated orders, cannot delete", "rowKey", rowKey)
		return errs.Validation("Cannot delete product because it is associated with existing orders")
	}

	if err := s.repo.DeleteProduct(ctx, partitionKey, rowKey); err != nil {
		return err
	}

	slog.Info("Product deleted", "rowKey", rowKey)
	return nil
}

func (s *ProductService) HasOrders(ctx context.Context, rowKey string) (bool, error) {
	return s.repo.HasOrdersForProduct(ctx, rowKey)
}
