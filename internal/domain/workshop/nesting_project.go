package workshop

import (
	"encoding/json"

	"github.com/mazzel/portal/internal/domain/shared"
)

// NestingProject is a saved nesting layout. The cut plan itself lives in
// the free-form document; name and customer are lifted out for listings.
type NestingProject struct {
	shared.BaseEntity
	Name       string          `json:"name"`
	CustomerID *uint           `json:"customer_id,omitempty"`
	Document   json.RawMessage `json:"document,omitempty"`
}

// NewNestingProject creates a project with the given layout document
func NewNestingProject(name string, customerID *uint, document json.RawMessage) (*NestingProject, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Proje adı zorunludur")
	}
	return &NestingProject{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CustomerID: customerID,
		Document:   document,
	}, nil
}
