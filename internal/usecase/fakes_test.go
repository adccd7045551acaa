package usecase

import (
	"context"
	"sync"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
)

// memStore is an in-memory EntityStore with the same error contract as the
// Postgres repository.
type memStore struct {
	mu             sync.Mutex
	customers      map[string]models.Customer
	products       map[string]models.Product
	orders         map[string]models.Order
	insertOrderErr error
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[string]models.Customer{},
		products:  map[string]models.Product{},
		orders:    map[string]models.Order{},
	}
}

func (m *memStore) EnsureSchema(ctx context.Context) error { return nil }

func (m *memStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Customer{}
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[rowKey]
	if !ok || c.PartitionKey != partitionKey {
		return nil, errs.NotFound("Customer not found")
	}
	return &c, nil
}

func (m *memStore) InsertCustomer(ctx context.Context, customer models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.RowKey] = customer
	return nil
}

func (m *memStore) ReplaceCustomer(ctx context.Context, customer models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.RowKey]; !ok {
		return errs.NotFound("Customer not found")
	}
	m.customers[customer.RowKey] = customer
	return nil
}

func (m *memStore) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.CustomerRowKey == rowKey {
			return errs.Validation("Cannot delete customer because they have associated orders")
		}
	}
	if _, ok := m.customers[rowKey]; !ok {
		return errs.NotFound("Customer not found")
	}
	delete(m.customers, rowKey)
	return nil
}

func (m *memStore) CustomerContactInUse(ctx context.Context, email, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email || c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) GetProduct(ctx context.Context, partitionKey, rowKey string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[rowKey]
	if !ok || p.PartitionKey != partitionKey {
		return nil, errs.NotFound("Product not found")
	}
	return &p, nil
}

func (m *memStore) InsertProduct(ctx context.Context, product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.RowKey] = product
	return nil
}

func (m *memStore) ReplaceProduct(ctx context.Context, product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.RowKey]; !ok {
		return errs.NotFound("Product not found")
	}
	m.products[product.RowKey] = product
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, partitionKey, rowKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ProductRowKey == rowKey {
			return errs.Validation("Cannot delete product because it is associated with existing orders")
		}
	}
	if _, ok := m.products[rowKey]; !ok {
		return errs.NotFound("Product not found")
	}
	delete(m.products, rowKey)
	return nil
}

func (m *memStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memStore) GetOrder(ctx context.Context, partitionKey, rowKey string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[rowKey]
	if !ok || o.PartitionKey != partitionKey {
		return nil, errs.NotFound("Order not found")
	}
	return &o, nil
}

func (m *memStore) InsertOrder(ctx context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertOrderErr != nil {
		return m.insertOrderErr
	}
	m.orders[order.RowKey] = order
	return nil
}

func (m *memStore) ReplaceOrder(ctx context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.RowKey]; !ok {
		return errs.NotFound("Order not found")
	}
	m.orders[order.RowKey] = order
	return nil
}

func (m *memStore) DeleteOrder(ctx context.Context, partitionKey, rowKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[rowKey]; !ok {
		return errs.NotFound("Order not found")
	}
	delete(m.orders, rowKey)
	return nil
}

func (m *memStore) HasOrdersForCustomer(ctx context.Context, customerRowKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.CustomerRowKey == customerRowKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) HasOrdersForProduct(ctx context.Context, productRowKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ProductRowKey == productRowKey {
			return true, nil
		}
	}
	return false, nil
}

// fakeQueue records enqueued payloads.
type fakeQueue struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (q *fakeQueue) Enqueue(ctx context.Context, payload string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, payload)
	return nil
}

func (q *fakeQueue) Close() error { return nil }
