package workshop

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/domain/workshop"
)

// Payload is a free-form workshop entity body. The frontend owns the
// field set; the service only lifts out the indexed identity columns.
type Payload map[string]interface{}

// Service provides the workshop CRUD operations for customers, materials
// and nesting projects
type Service struct {
	customerRepo workshop.CustomerRepository
	materialRepo workshop.MaterialRepository
	projectRepo  workshop.NestingProjectRepository
}

// NewService creates a new workshop Service
func NewService(
	customerRepo workshop.CustomerRepository,
	materialRepo workshop.MaterialRepository,
	projectRepo workshop.NestingProjectRepository,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		materialRepo: materialRepo,
		projectRepo:  projectRepo,
	}
}

// ===================== Customers =====================

// ListCustomers returns all customers as flat documents
func (s *Service) ListCustomers(ctx context.Context) ([]Payload, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Payload, 0, len(customers))
	for _, c := range customers {
		result = append(result, customerPayload(c))
	}
	return result, nil
}

// GetCustomer returns one customer as a flat document
func (s *Service) GetCustomer(ctx context.Context, id uint) (Payload, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return customerPayload(customer), nil
}

// CreateCustomer stores a new active customer, returning the assigned ID
func (s *Service) CreateCustomer(ctx context.Context, payload Payload) (uint, error) {
	customer, err := workshop.NewCustomer(stringField(payload, "name"), documentFrom(payload))
	if err != nil {
		return 0, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return 0, err
	}
	return customer.ID, nil
}

// UpdateCustomer replaces the customer's document, keeping its identity
func (s *Service) UpdateCustomer(ctx context.Context, id uint, payload Payload) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if name := stringField(payload, "name"); name != "" {
		customer.Name = name
	}
	if status := stringField(payload, "status"); status != "" {
		customer.Status = workshop.EntityStatus(status)
	}
	customer.Document = documentFrom(payload)
	return s.customerRepo.Save(ctx, customer)
}

// DeleteCustomer removes a customer. Deleting a missing customer is not
// an error, matching the list-rewrite semantics the frontend expects.
func (s *Service) DeleteCustomer(ctx context.Context, id uint) error {
	err := s.customerRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// ===================== Materials =====================

// ListMaterials returns all materials, optionally filtered by category
func (s *Service) ListMaterials(ctx context.Context, category string) ([]Payload, error) {
	materials, err := s.materialRepo.FindAll(ctx, category)
	if err != nil {
		return nil, err
	}
	result := make([]Payload, 0, len(materials))
	for _, m := range materials {
		result = append(result, materialPayload(m))
	}
	return result, nil
}

// CreateMaterial stores a new active material, returning the assigned ID
func (s *Service) CreateMaterial(ctx context.Context, payload Payload) (uint, error) {
	material, err := workshop.NewMaterial(
		stringField(payload, "name"),
		stringField(payload, "category"),
		documentFrom(payload),
	)
	if err != nil {
		return 0, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return 0, err
	}
	return material.ID, nil
}

// UpdateMaterial replaces the material's document, keeping its identity
func (s *Service) UpdateMaterial(ctx context.Context, id uint, payload Payload) error {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if name := stringField(payload, "name"); name != "" {
		material.Name = name
	}
	if category, ok := payload["category"].(string); ok {
		material.Category = category
	}
	if status := stringField(payload, "status"); status != "" {
		material.Status = workshop.EntityStatus(status)
	}
	material.Document = documentFrom(payload)
	return s.materialRepo.Save(ctx, material)
}

// DeleteMaterial removes a material, tolerating a missing one
func (s *Service) DeleteMaterial(ctx context.Context, id uint) error {
	err := s.materialRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// Categories returns the distinct material categories in use
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.materialRepo.Categories(ctx)
}

// ===================== Nesting projects =====================

// ListProjects returns all nesting projects as flat documents
func (s *Service) ListProjects(ctx context.Context) ([]Payload, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Payload, 0, len(projects))
	for _, p := range projects {
		result = append(result, projectPayload(p))
	}
	return result, nil
}

// GetProject returns one nesting project as a flat document
func (s *Service) GetProject(ctx context.Context, id uint) (Payload, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectPayload(project), nil
}

// SaveProject creates or updates a nesting project. A payload carrying a
// known ID updates that project; anything else creates a new one.
func (s *Service) SaveProject(ctx context.Context, payload Payload) (uint, error) {
	if id, ok := uintField(payload, "id"); ok {
		project, err := s.projectRepo.FindByID(ctx, id)
		if err == nil {
			if name := stringField(payload, "name"); name != "" {
				project.Name = name
			}
			project.CustomerID = customerRef(payload)
			project.Document = documentFrom(payload)
			if err := s.projectRepo.Save(ctx, project); err != nil {
				return 0, err
			}
			return project.ID, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return 0, err
		}
	}

	project, err := workshop.NewNestingProject(stringField(payload, "name"), customerRef(payload), documentFrom(payload))
	if err != nil {
		return 0, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return 0, err
	}
	return project.ID, nil
}

// DeleteProject removes a nesting project, tolerating a missing one
func (s *Service) DeleteProject(ctx context.Context, id uint) error {
	err := s.projectRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// ===================== payload helpers =====================

func customerPayload(c *workshop.Customer) Payload {
	p := flatten(c.Document)
	p["id"] = c.ID
	p["name"] = c.Name
	p["status"] = string(c.Status)
	p["created_at"] = c.CreatedAt.Format("2006-01-02")
	return p
}

func materialPayload(m *workshop.Material) Payload {
	p := flatten(m.Document)
	p["id"] = m.ID
	p["name"] = m.Name
	p["category"] = m.Category
	p["status"] = string(m.Status)
	p["created_at"] = m.CreatedAt.Format("2006-01-02")
	return p
}

func projectPayload(pr *workshop.NestingProject) Payload {
	p := flatten(pr.Document)
	p["id"] = pr.ID
	p["name"] = pr.Name
	if pr.CustomerID != nil {
		p["customer_id"] = *pr.CustomerID
	}
	p["created_at"] = pr.CreatedAt.Format("2006-01-02")
	return p
}

func flatten(document json.RawMessage) Payload {
	p := Payload{}
	if len(document) > 0 {
		// A corrupt document degrades to the identity columns alone.
		_ = json.Unmarshal(document, &p)
	}
	return p
}

// documentFrom strips the identity columns and serializes the rest
func documentFrom(payload Payload) json.RawMessage {
	doc := make(Payload, len(payload))
	for key, value := range payload {
		switch key {
		case "id", "created_at":
			continue
		}
		doc[key] = value
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return json.RawMessage("{}")
	}
	return raw
}

func stringField(payload Payload, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func uintField(payload Payload, key string) (uint, bool) {
	switch v := payload[key].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

func customerRef(payload Payload) *uint {
	if id, ok := uintField(payload, "customer_id"); ok {
		return &id
	}
	return nil
}
