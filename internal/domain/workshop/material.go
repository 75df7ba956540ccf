package workshop

import (
	"encoding/json"

	"github.com/mazzel/portal/internal/domain/shared"
)

// Material is a stock material used by nesting projects. Category is an
// indexed column so listings can filter and enumerate distinct categories.
type Material struct {
	shared.BaseEntity
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Status   EntityStatus    `json:"status"`
	Document json.RawMessage `json:"document,omitempty"`
}

// NewMaterial creates an active material
func NewMaterial(name, category string, document json.RawMessage) (*Material, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Malzeme adı zorunludur")
	}
	return &Material{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Status:     StatusActive,
		Document:   document,
	}, nil
}
