package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	_ "github.com/lib/pq"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func ConnectToDB(connString string, maxConns, idleConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(idleConns)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the entity tables if they are absent. It is idempotent
// and safe to call from multiple components.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			partition_key TEXT NOT NULL,
			row_key       TEXT NOT NULL,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			phone         TEXT NOT NULL,
			address       TEXT NOT NULL,
			file_name     TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (partition_key, row_key)
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			partition_key TEXT NOT NULL,
			row_key       TEXT NOT NULL,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL,
			price         DOUBLE PRECISION NOT NULL,
			quantity      INTEGER NOT NULL,
			image_url     TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (partition_key, row_key)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			partition_key    TEXT NOT NULL,
			row_key          TEXT NOT NULL,
			customer_row_key TEXT NOT NULL,
			customer_name    TEXT NOT NULL DEFAULT '',
			customer_email   TEXT NOT NULL DEFAULT '',
			product_row_key  TEXT NOT NULL,
			product_name     TEXT NOT NULL DEFAULT '',
			unit_price       DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity         INTEGER NOT NULL,
			total_price      DOUBLE PRECISION NOT NULL DEFAULT 0,
			order_date       TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (partition_key, row_key)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			slog.Error("Failed to ensure schema", "error", err)
			return errs.Storage("Failed to ensure storage schema", err)
		}
	}
	return nil
}

// Customer methods

func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT partition_key, row_key, name, email, phone, address, file_name
		FROM customers ORDER BY row_key;
	`)
	if err != nil {
		slog.Error("Failed to list customers", "error", err)
		return nil, errs.Storage("Failed to list customers", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.PartitionKey, &c.RowKey, &c.Name, &c.Email, &c.Phone, &c.Address, &c.FileName); err != nil {
			return nil, errs.Storage("Failed to scan customer row", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("Failed to list customers", err)
	}
	return customers, nil
}

func (r *Repository) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT partition_key, row_key, name, email, phone, address, file_name
		FROM customers WHERE partition_key = $1 AND row_key = $2;
	`, partitionKey, rowKey).Scan(&c.PartitionKey, &c.RowKey, &c.Name, &c.Email, &c.Phone, &c.Address, &c.FileName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Customer not found")
	}
	if err != nil {
		slog.Error("Failed to get customer", "error", err, "rowKey", rowKey)
		return nil, errs.Storage("Failed to get customer", err)
	}
	return &c, nil
}

func (r *Repository) InsertCustomer(ctx context.Context, customer models.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (partition_key, row_key, name, email, phone, address, file_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, customer.PartitionKey, customer.RowKey, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.FileName)
	if err != nil {
		slog.Error("Failed to insert customer", "error", err, "rowKey", customer.RowKey)
		return errs.Storage("Failed to insert customer", err)
	}
	return nil
}

func (r *Repository) ReplaceCustomer(ctx context.Context, customer models.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name = $3, email = $4, phone = $5, address = $6, file_name = $7
		WHERE partition_key = $1 AND row_key = $2;
	`, customer.PartitionKey, customer.RowKey, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.FileName)
	if err != nil {
		slog.Error("Failed to update customer", "error", err, "rowKey", customer.RowKey)
		return errs.Storage("Failed to update customer", err)
	}
	return noRowsToNotFound(res, "Customer not found")
}

// DeleteCustomer removes the customer only while no order references it; the
// guard and the delete are one statement so a concurrent order creation cannot
// slip between them.
func (r *Repository) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM customers
		WHERE partition_key = $1 AND row_key = $2
		AND NOT EXISTS (SELECT 1 FROM orders WHERE customer_row_key = $2);
	`, partitionKey, rowKey)
	if err != nil {
		slog.Error("Failed to delete customer", "error", err, "rowKey", rowKey)
		return errs.Storage("Failed to delete customer", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errs.Storage("Failed to delete customer", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing deleted: either the customer is referenced or it never existed.
	hasOrders, err := r.HasOrdersForCustomer(ctx, rowKey)
	if err != nil {
		return err
	}
	if hasOrders {
		return errs.Validation("Cannot delete customer because they have associated orders")
	}
	return errs.NotFound("Customer not found")
}

func (r *Repository) CustomerContactInUse(ctx context.Context, email, phone string) (bool, error) {
	var inUse bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 OR phone = $2);
	`, email, phone).Scan(&inUse)
	if err != nil {
		slog.Error("Failed to check customer contact uniqueness", "error", err)
		return false, errs.Storage("Failed to check customer uniqueness", err)
	}
	return inUse, nil
}

// Product methods

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT partition_key, row_key, name, description, price, quantity, image_url
		FROM products ORDER BY row_key;
	`)
	if err != nil {
		slog.Error("Failed to list products", "error", err)
		return nil, errs.Storage("Failed to list products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.PartitionKey, &p.RowKey, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.ImageURL); err != nil {
			return nil, errs.Storage("Failed to scan product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("Failed to list products", err)
	}
	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, partitionKey, rowKey string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT partition_key, row_key, name, description, price, quantity, image_url
		FROM products WHERE partition_key = $1 AND row_key = $2;
	`, partitionKey, rowKey).Scan(&p.PartitionKey, &p.RowKey, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Product not found")
	}
	if err != nil {
		slog.Error("Failed to get product", "error", err, "rowKey", rowKey)
		return nil, errs.Storage("Failed to get product", err)
	}
	return &p, nil
}

func (r *Repository) InsertProduct(ctx context.Context, product models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (partition_key, row_key, name, description, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, product.PartitionKey, product.RowKey, product.Name, product.Description,
		product.Price, product.Quantity, product.ImageURL)
	if err != nil {
		slog.Error("Failed to insert product", "error", err, "rowKey", product.RowKey)
		return errs.Storage("Failed to insert product", err)
	}
	return nil
}

func (r *Repository) ReplaceProduct(ctx context.Context, product models.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = $3, description = $4, price = $5, quantity = $6, image_url = $7
		WHERE partition_key = $1 AND row_key = $2;
	`, product.PartitionKey, product.RowKey, product.Name, product.Description,
		product.Price, product.Quantity, product.ImageURL)
	if err != nil {
		slog.Error("Failed to update product", "error", err, "rowKey", product.RowKey)
		return errs.Storage("Failed to update product", err)
	}
	return noRowsToNotFound(res, "Product not found")
}

func (r *Repository) DeleteProduct(ctx context.Context, partitionKey, rowKey string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE partition_key = $1 AND row_key = $2
		AND NOT EXISTS (SELECT 1 FROM orders WHERE product_row_key = $2);
	`, partitionKey, rowKey)
	if err != nil {
		slog.Error("Failed to delete product", "error", err, "rowKey", rowKey)
		return errs.Storage("Failed to delete product", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errs.Storage("Failed to delete product", err)
	}
	if affected > 0 {
		return nil
	}

	hasOrders, err := r.HasOrdersForProduct(ctx, rowKey)
	if err != nil {
		return err
	}
	if hasOrders {
		return errs.Validation("Cannot delete product because it is associated with existing orders")
	}
	return errs.NotFound("Product not found")
}

// Order methods

func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT partition_key, row_key, customer_row_key, customer_name, customer_email,
		       product_row_key, product_name, unit_price, quantity, total_price, order_date
		FROM orders ORDER BY order_date;
	`)
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		return nil, errs.Storage("Failed to list orders", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.PartitionKey, &o.RowKey, &o.CustomerRowKey, &o.CustomerName, &o.CustomerEmail,
			&o.ProductRowKey, &o.ProductName, &o.UnitPrice, &o.Quantity, &o.TotalPrice, &o.OrderDate); err != nil {
			return nil, errs.Storage("Failed to scan order row", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("Failed to list orders", err)
	}
	return orders, nil
}

func (r *Repository) GetOrder(ctx context.Context, partitionKey, rowKey string) (*models.Order, error) {
	var o models.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT partition_key, row_key, customer_row_key, customer_name, customer_email,
		       product_row_key, product_name, unit_price, quantity, total_price, order_date
		FROM orders WHERE partition_key = $1 AND row_key = $2;
	`, partitionKey, rowKey).Scan(&o.PartitionKey, &o.RowKey, &o.CustomerRowKey, &o.CustomerName, &o.CustomerEmail,
		&o.ProductRowKey, &o.ProductName, &o.UnitPrice, &o.Quantity, &o.TotalPrice, &o.OrderDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Order not found")
	}
	if err != nil {
		slog.Error("Failed to get order", "error", err, "rowKey", rowKey)
		return nil, errs.Storage("Failed to get order", err)
	}
	return &o, nil
}

func (r *Repository) InsertOrder(ctx context.Context, order models.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (partition_key, row_key, customer_row_key, customer_name, customer_email,
		                    product_row_key, product_name, unit_price, quantity, total_price, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`, order.PartitionKey, order.RowKey, order.CustomerRowKey, order.CustomerName, order.CustomerEmail,
		order.ProductRowKey, order.ProductName, order.UnitPrice, order.Quantity, order.TotalPrice, order.OrderDate)
	if err != nil {
		slog.Error("Failed to insert order", "error", err, "rowKey", order.RowKey)
		return errs.Storage("Failed to insert order", err)
	}
	return nil
}

func (r *Repository) ReplaceOrder(ctx context.Context, order models.Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET customer_row_key = $3, customer_name = $4, customer_email = $5,
		                  product_row_key = $6, product_name = $7, unit_price = $8,
		                  quantity = $9, total_price = $10, order_date = $11
		WHERE partition_key = $1 AND row_key = $2;
	`, order.PartitionKey, order.RowKey, order.CustomerRowKey, order.CustomerName, order.CustomerEmail,
		order.ProductRowKey, order.ProductName, order.UnitPrice, order.Quantity, order.TotalPrice, order.OrderDate)
	if err != nil {
		slog.Error("Failed to update order", "error", err, "rowKey", order.RowKey)
		return errs.Storage("Failed to update order", err)
	}
	return noRowsToNotFound(res, "Order not found")
}

func (r *Repository) DeleteOrder(ctx context.Context, partitionKey, rowKey string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM orders WHERE partition_key = $1 AND row_key = $2;
	`, partitionKey, rowKey)
	if err != nil {
		slog.Error("Failed to delete order", "error", err, "rowKey", rowKey)
		return errs.Storage("Failed to delete order", err)
	}
	return noRowsToNotFound(res, "Order not found")
}

func (r *Repository) HasOrdersForCustomer(ctx context.Context, customerRowKey string) (bool, error) {
	var hasOrders bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE customer_row_key = $1);
	`, customerRowKey).Scan(&hasOrders)
	if err != nil {
		slog.Error("Failed to check customer orders", "error", err, "customerRowKey", customerRowKey)
		return false, errs.Storage("Failed to check customer orders", err)
	}
	return hasOrders, nil
}

func (r *Repository) HasOrdersForProduct(ctx context.Context, productRowKey string) (bool, error) {
	var hasOrders bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE product_row_key = $1);
	`, productRowKey).Scan(&hasOrders)
	if err != nil {
		slog.Error("Failed to check product orders", "error", err, "productRowKey", productRowKey)
		return false, errs.Storage("Failed to check product orders", err)
	}
	return hasOrders, nil
}

func noRowsToNotFound(res sql.Result, message string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errs.Storage(message, err)
	}
	if affected == 0 {
		return errs.NotFound(message)
	}
	return nil
}
