package entity

import "time"

// Supplier proveedor de productos de una tienda.
type Supplier struct {
	ID          string
	StoreID     string
	Name        string
	ContactName string
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
