package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
	"storefront-service/pkg/interfaces"
)

type OrderService struct {
	repo  interfaces.EntityStore
	queue interfaces.OrderQueue
}

func NewOrderService(repo interfaces.EntityStore, queue interfaces.OrderQueue) *OrderService {
	return &OrderService{repo: repo, queue: queue}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) Get(ctx context.Context, partitionKey, rowKey string) (*models.Order, error) {
	return s.repo.GetOrder(ctx, partitionKey, rowKey)
}

// Create persists the order directly (the authoritative write), snapshotting
// customer and product fields as they are at this moment. A missing customer
// or product leaves its snapshot fields unset rather than failing the create.
// A human-readable notification then goes onto the intake queue; the
// queue-side write the consumer performs is a separate record and is never
// reconciled with this one.
func (s *OrderService) Create(ctx context.Context, order models.Order) (string, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}

	order.PartitionKey = models.OrderPartition
	order.RowKey = uuid.NewString()
	order.OrderDate = time.Now().UTC()

	customer, err := s.repo.GetCustomer(ctx, models.CustomerPartition, order.CustomerRowKey)
	if err != nil && errs.KindOf(err) != errs.KindNotFound {
		return "", err
	}
	if customer != nil {
		order.CustomerName = customer.Name
		order.CustomerEmail = customer.Email
	}

	product, err := s.repo.GetProduct(ctx, models.ProductPartition, order.ProductRowKey)
	if err != nil && errs.KindOf(err) != errs.KindNotFound {
		return "", err
	}
	if product != nil {
		order.ProductName = product.Name
		order.UnitPrice = product.Price
	}

	order.TotalPrice = float64(order.Quantity) * order.UnitPrice

	if err := s.repo.InsertOrder(ctx, order); err != nil {
		return "", err
	}

	notification := fmt.Sprintf("New order by customer %s of the product %s",
		order.CustomerName, order.ProductName)
	if err := s.queue.Enqueue(ctx, notification); err != nil {
		// The authoritative write already happened; the notification is a
		// side effect and its failure does not undo the order.
		slog.Error("Failed to enqueue order notification", "error", err, "rowKey", order.RowKey)
	}

	slog.Info("Order created", "rowKey", order.RowKey, "totalPrice", order.TotalPrice)
	return order.RowKey, nil
}

// Update replaces the order, preserving the original customer email and order
// date and re-snapshotting the customer and product fields for the (possibly
// changed) references.
func (s *OrderService) Update(ctx context.Context, order models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetOrder(ctx, order.PartitionKey, order.RowKey)
	if err != nil {
		return err
	}

	order.CustomerEmail = existing.CustomerEmail
	order.OrderDate = existing.OrderDate

	customer, err := s.repo.GetCustomer(ctx, models.CustomerPartition, order.CustomerRowKey)
	if err != nil && errs.KindOf(err) != errs.KindNotFound {
		return err
	}
	if customer != nil {
		order.CustomerName = customer.Name
	}

	product, err := s.repo.GetProduct(ctx, models.ProductPartition, order.ProductRowKey)
	if err != nil && errs.KindOf(err) != errs.KindNotFound {
		return err
	}
	if product != nil {
		order.ProductName = product.Name
		order.UnitPrice = product.Price
	}

	order.TotalPrice = float64(order.Quantity) * order.UnitPrice

	if err := s.repo.ReplaceOrder(ctx, order); err != nil {
		return err
	}

	slog.Info("Order updated", "rowKey", order.RowKey, "totalPrice", order.TotalPrice)
	return nil
}

func (s *OrderService) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if err := s.repo.DeleteOrder(ctx, partitionKey, rowKey); err != nil {
		return err
	}
	slog.Info("Order deleted", "rowKey", rowKey)
	return nil
}

// Queue hands a raw payload to the intake queue verbatim. This is the second,
// queue-only intake path: if the payload is a JSON order the consumer will
// persist it under a fresh identity.
func (s *OrderService) Queue(ctx context.Context, payload string) error {
	if payload == "" {
		return errs.Validation("Order payload is required")
	}
	return s.queue.Enqueue(ctx, payload)
}
