package entity

import "time"

// Store representa una tienda/tenant del sistema. Todo el catálogo cuelga de una Store.
type Store struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria, única
	Address   string
	Phone     string
	Email     string
	Currency  string // ISO 4217, ej. COP
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
