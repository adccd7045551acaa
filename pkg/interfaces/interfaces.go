package interfaces

import (
	"context"

	"storefront-service/internal/domain/models"
)

// CustomerStore is the entity-store surface for customer records.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, partitionKey, rowKey string) (*models.Customer, error)
	InsertCustomer(ctx context.Context, customer models.Customer) error
	ReplaceCustomer(ctx context.Context, customer models.Customer) error
	// DeleteCustomer refuses to remove a customer that is still referenced by
	// an order; the check and the delete are a single statement.
	DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error
	CustomerContactInUse(ctx context.Context, email, phone string) (bool, error)
}

// ProductStore is the entity-store surface for product records.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, partitionKey, rowKey string) (*models.Product, error)
	InsertProduct(ctx context.Context, product models.Product) error
	ReplaceProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, partitionKey, rowKey string) error
}

// OrderStore is the entity-store surface for order records, including the
// referencing-order checks used before customer/product deletion.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, partitionKey, rowKey string) (*models.Order, error)
	InsertOrder(ctx context.Context, order models.Order) error
	ReplaceOrder(ctx context.Context, order models.Order) error
	DeleteOrder(ctx context.Context, partitionKey, rowKey string) error
	HasOrdersForCustomer(ctx context.Context, customerRowKey string) (bool, error)
	HasOrdersForProduct(ctx context.Context, productRowKey string) (bool, error)
}

// EntityStore is the full table-like persistence layer.
type EntityStore interface {
	CustomerStore
	ProductStore
	OrderStore
	EnsureSchema(ctx context.Context) error
}

// BlobStore holds product images addressed by file name.
type BlobStore interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	Delete(ctx context.Context, blobURL string) error
}

// DocumentStore holds order documents under directory/fileName paths.
type DocumentStore interface {
	Upload(ctx context.Context, directory, fileName string, data []byte) error
	Download(ctx context.Context, directory, fileName string) ([]byte, error)
	List(ctx context.Context, directory string) ([]models.FileInfo, error)
	Delete(ctx context.Context, directory, fileName string) error
}

// OrderQueue carries order-intake payloads to the background consumer.
type OrderQueue interface {
	Enqueue(ctx context.Context, payload string) error
	Close() error
}

// QueueConsumer is the background order processor.
type QueueConsumer interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// HTTPServer is the web delivery tier.
type HTTPServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}
