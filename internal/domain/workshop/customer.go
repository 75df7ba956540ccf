package workshop

import (
	"encoding/json"

	"github.com/mazzel/portal/internal/domain/shared"
)

// EntityStatus marks workshop entities active or archived
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusArchived EntityStatus = "archived"
)

// Customer is a workshop customer. Beyond the indexed identity columns the
// payload is free-form and kept as a JSON document, so the frontend can
// evolve its fields without schema churn.
type Customer struct {
	shared.BaseEntity
	Name     string          `json:"name"`
	Status   EntityStatus    `json:"status"`
	Document json.RawMessage `json:"document,omitempty"`
}

// NewCustomer creates an active customer with the given free-form document
func NewCustomer(name string, document json.RawMessage) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Müşteri adı zorunludur")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     StatusActive,
		Document:   document,
	}, nil
}
