package portal

import (
	"context"

	"github.com/mazzel/portal/internal/domain/settings"
)

// SettingsService loads and updates the portal settings document
type SettingsService struct {
	repo settings.Repository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

// NotificationRequest represents a notification to append to the portal
type NotificationRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Get returns the effective settings: the defaults overlaid with whatever
// has been saved, per top-level key
func (s *SettingsService) Get(ctx context.Context) (settings.Document, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return settings.Merge(stored), nil
}

// Update applies a shallow merge of the given keys onto the effective
// settings and persists the result
func (s *SettingsService) Update(ctx context.Context, patch settings.Document) error {
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	for key, value := range patch {
		current[key] = value
	}
	return s.repo.Save(ctx, current)
}

// AddNotification appends a notification to the settings document. An
// empty type defaults to "info".
func (s *SettingsService) AddNotification(ctx context.Context, req NotificationRequest) error {
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}

	kind := req.Type
	if kind == "" {
		kind = "info"
	}
	entry := settings.Notification{
		Message: req.Message,
		Type:    kind,
	}

	list, _ := current["notifications"].([]interface{})
	current["notifications"] = append(list, entry)
	return s.repo.Save(ctx, current)
}
