package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleCatalogador = "catalogador"
	RoleVendedor    = "vendedor"
)

// User representa un usuario del sistema (pertenece a una Store).
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, catalogador, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
