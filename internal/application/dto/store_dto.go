package dto

import "time"

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	TaxID    string `json:"tax_id" validate:"required,min=1,max=20"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse lista paginada de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
