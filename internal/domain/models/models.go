package models

import (
	"time"
)

// Partition labels. Every record of a kind lives in one logical partition;
// the row key is a generated unique token unless the caller supplies one.
const (
	CustomerPartition = "Customer"
	ProductPartition  = "Product"
	OrderPartition    = "Order"
)

type Customer struct {
	PartitionKey string `json:"partitionKey"`
	RowKey       string `json:"rowKey"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	FileName string `json:"fileName,omitempty"`
}

type Product struct {
	PartitionKey string `json:"partitionKey"`
	RowKey       string `json:"rowKey"`

	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type Order struct {
	PartitionKey string `json:"partitionKey"`
	RowKey       string `json:"rowKey"`

	CustomerRowKey string `json:"customerRowKey"`
	// Snapshot of the customer at creation time, not re-synced afterwards.
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`

	ProductRowKey string `json:"productRowKey"`
	// Snapshot of the product at creation time.
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`

	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
	OrderDate  time.Time `json:"orderDate"`
}

// FileInfo describes one document-store entry in a directory listing.
type FileInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}
