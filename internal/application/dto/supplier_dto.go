package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ContactName string `json:"contact_name" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=40"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
