package masrafci

import (
	"context"
	"errors"

	"github.com/mazzel/portal/internal/domain/reminder"
	"github.com/mazzel/portal/internal/domain/shared"
)

// ReminderService runs the recurring-bill reminder engine: rule
// management, the monthly due check and the event action state machine
type ReminderService struct {
	ruleRepo  reminder.RuleRepository
	eventRepo reminder.EventRepository
	txScope   TransactionScope
	clock     Clock
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	ruleRepo reminder.RuleRepository,
	eventRepo reminder.EventRepository,
	txScope TransactionScope,
	clock Clock,
) *ReminderService {
	return &ReminderService{
		ruleRepo:  ruleRepo,
		eventRepo: eventRepo,
		txScope:   txScope,
		clock:     clock,
	}
}

// RuleResponse represents a reminder rule in API responses
type RuleResponse struct {
	ID                uint   `json:"id"`
	User              string `json:"user"`
	ProviderKey       string `json:"provider_key"`
	DisplayName       string `json:"display_name"`
	Enabled           bool   `json:"enabled"`
	ExpectedStartDay  int    `json:"expected_start_day"`
	ExpectedEndDay    int    `json:"expected_end_day"`
	LeadDays          int    `json:"lead_days"`
	LastPromptedMonth string `json:"last_prompted_month,omitempty"`
	SnoozeUntil       string `json:"snooze_until,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// CreateRuleRequest represents a request to create a reminder rule.
// Omitted window fields fall back to the whole 1..28 range with a three
// day lead.
type CreateRuleRequest struct {
	DisplayName      string `json:"display_name" binding:"required"`
	ExpectedStartDay *int   `json:"expected_start_day"`
	ExpectedEndDay   *int   `json:"expected_end_day"`
	LeadDays         *int   `json:"lead_days"`
}

// CreateRuleResponse carries the provider key derived for a new rule
type CreateRuleResponse struct {
	ProviderKey string `json:"provider_key"`
}

// UpdateRuleRequest represents a partial reminder rule update. Only the
// fields present in the request body are applied.
type UpdateRuleRequest struct {
	DisplayName      *string `json:"display_name"`
	Enabled          *bool   `json:"enabled"`
	ExpectedStartDay *int    `json:"expected_start_day"`
	ExpectedEndDay   *int    `json:"expected_end_day"`
	LeadDays         *int    `json:"lead_days"`
	SnoozeUntil      *string `json:"snooze_until" binding:"omitempty,isodate"`
}

// EventResponse represents a reminder event joined with its rule's window
// metadata, the shape the reminder card on the dashboard consumes
type EventResponse struct {
	ID               uint    `json:"id"`
	RuleID           uint    `json:"rule_id"`
	Month            string  `json:"month"`
	Status           string  `json:"status"`
	PromptedAt       *string `json:"prompted_at"`
	AnsweredAt       *string `json:"answered_at"`
	LinkedRecordID   *uint   `json:"linked_record_id"`
	CreatedAt        string  `json:"created_at"`
	DisplayName      string  `json:"display_name"`
	ProviderKey      string  `json:"provider_key"`
	ExpectedStartDay int     `json:"expected_start_day"`
	ExpectedEndDay   int     `json:"expected_end_day"`
}

// ActionRequest carries the user's response to a reminder event
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// ActionResponse is the result of a reminder action. Redirect and
// DisplayName are only set for add_now, which sends the UI to the
// record-entry form prefilled with the provider name.
type ActionResponse struct {
	Redirect    string `json:"redirect,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// ListRules returns all of the user's reminder rules ordered by display name
func (s *ReminderService) ListRules(ctx context.Context, user string) ([]RuleResponse, error) {
	rules, err := s.ruleRepo.FindByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	result := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, toRuleResponse(rule))
	}
	return result, nil
}

// CreateRule creates a reminder rule for the user. The provider key is
// derived from the display name; a second rule for the same provider is
// rejected.
func (s *ReminderService) CreateRule(ctx context.Context, user string, req CreateRuleRequest) (*CreateRuleResponse, error) {
	startDay := valueOrDefault(req.ExpectedStartDay, reminder.MinWindowDay)
	endDay := valueOrDefault(req.ExpectedEndDay, reminder.MaxWindowDay)
	leadDays := valueOrDefault(req.LeadDays, reminder.DefaultLeadDays)

	rule, err := reminder.NewRule(user, req.DisplayName, startDay, endDay, leadDays)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Bu kurum için hatırlatıcı zaten mevcut")
		}
		return nil, err
	}
	return &CreateRuleResponse{ProviderKey: rule.ProviderKey}, nil
}

// UpdateRule applies a partial update to the user's rule. A display name
// change recomputes the provider key; a request without any recognized
// field is rejected.
func (s *ReminderService) UpdateRule(ctx context.Context, user string, ruleID uint, req UpdateRuleRequest) error {
	if req.DisplayName == nil && req.Enabled == nil && req.ExpectedStartDay == nil &&
		req.ExpectedEndDay == nil && req.LeadDays == nil && req.SnoozeUntil == nil {
		return shared.NewDomainError("INVALID_INPUT", "Güncellenecek alan yok")
	}

	rule, err := s.ruleRepo.FindByID(ctx, ruleID)
	if err != nil || rule.User != user {
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.NewDomainError("NOT_FOUND", "Kural bulunamadı")
	}

	if req.DisplayName != nil {
		if err := rule.Rename(*req.DisplayName); err != nil {
			return err
		}
	}
	if req.Enabled != nil {
		if *req.Enabled {
			rule.Enabled = true
		} else {
			rule.Disable()
		}
	}
	if req.ExpectedStartDay != nil {
		if err := rule.SetWindow(*req.ExpectedStartDay, rule.ExpectedEndDay); err != nil {
			return err
		}
	}
	if req.ExpectedEndDay != nil {
		if err := rule.SetWindow(rule.ExpectedStartDay, *req.ExpectedEndDay); err != nil {
			return err
		}
	}
	if req.LeadDays != nil {
		if err := rule.SetLeadDays(*req.LeadDays); err != nil {
			return err
		}
	}
	if req.SnoozeUntil != nil {
		rule.SnoozeUntil = *req.SnoozeUntil
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return shared.NewDomainError("ALREADY_EXISTS", "Bu kurum için hatırlatıcı zaten mevcut")
		}
		return err
	}
	return nil
}

// ListEvents returns all of the user's reminder events for the month, any
// status, ordered by the rule's expected start day. An empty month means
// the current one.
func (s *ReminderService) ListEvents(ctx context.Context, user, month string) ([]EventResponse, error) {
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	}
	events, err := s.eventRepo.FindByUserAndMonth(ctx, user, month)
	if err != nil {
		return nil, err
	}
	return toEventResponses(events), nil
}

// RunCheck runs the due check for the user and month, then returns the
// month's still-pending events. The whole check commits as one unit.
//
// The day window is always evaluated against today's calendar day, even
// when the requested month is not the current one.
func (s *ReminderService) RunCheck(ctx context.Context, user, month string) ([]EventResponse, error) {
	today := s.clock.Now()
	todayDay := today.Day()
	todayISO := today.Format("2006-01-02")
	if month == "" {
		month = today.Format("2006-01")
	}

	var pending []*reminder.EventWithRule
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		rules, err := repos.RuleRepo().FindEnabledByUser(ctx, user)
		if err != nil {
			return err
		}

		providers, err := repos.RecordRepo().BillProviders(ctx, user, month)
		if err != nil {
			return err
		}
		enteredKeys := make(map[string]bool, len(providers))
		for _, p := range providers {
			enteredKeys[reminder.NormalizeProviderKey(p)] = true
		}

		for _, rule := range rules {
			if enteredKeys[rule.ProviderKey] {
				continue
			}
			if !rule.WindowOpen(todayDay) {
				continue
			}
			if rule.Snoozed(todayISO) {
				continue
			}
			if err := repos.EventRepo().CreatePending(ctx, reminder.NewPendingEvent(rule.ID, month)); err != nil {
				return err
			}
		}

		pending, err = repos.EventRepo().FindPendingByUserAndMonth(ctx, user, month)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toEventResponses(pending), nil
}

// Act applies the user's response to a reminder event. Events belonging
// to other users are indistinguishable from missing ones.
func (s *ReminderService) Act(ctx context.Context, user string, eventID uint, action reminder.Action) (*ActionResponse, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Geçersiz aksiyon")
	}

	now := s.clock.Now()
	response := &ActionResponse{}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		event, err := repos.EventRepo().FindByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Event bulunamadı")
			}
			return err
		}
		rule, err := repos.RuleRepo().FindByID(ctx, event.RuleID)
		if err != nil {
			return err
		}
		if rule.User != user {
			return shared.NewDomainError("NOT_FOUND", "Event bulunamadı")
		}

		switch action {
		case reminder.ActionAddNow:
			event.MarkPrompted(now)
			if err := repos.EventRepo().Save(ctx, event); err != nil {
				return err
			}
			response.Redirect = "add-record"
			response.DisplayName = rule.DisplayName

		case reminder.ActionSnooze3d:
			rule.SnoozeFor(now, reminder.SnoozeDays)
			if err := repos.RuleRepo().Save(ctx, rule); err != nil {
				return err
			}
			// Deleting the event lets the due check recreate it once
			// the snooze expires, still within the same month.
			if err := repos.EventRepo().Delete(ctx, event.ID); err != nil {
				return err
			}

		case reminder.ActionSkipMonth:
			event.SkipMonth(now)
			if err := repos.EventRepo().Save(ctx, event); err != nil {
				return err
			}

		case reminder.ActionDisableRule:
			rule.Disable()
			if err := repos.RuleRepo().Save(ctx, rule); err != nil {
				return err
			}
			event.Dismiss(now)
			if err := repos.EventRepo().Save(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func toRuleResponse(rule *reminder.Rule) RuleResponse {
	return RuleResponse{
		ID:                rule.ID,
		User:              rule.User,
		ProviderKey:       rule.ProviderKey,
		DisplayName:       rule.DisplayName,
		Enabled:           rule.Enabled,
		ExpectedStartDay:  rule.ExpectedStartDay,
		ExpectedEndDay:    rule.ExpectedEndDay,
		LeadDays:          rule.LeadDays,
		LastPromptedMonth: rule.LastPromptedMonth,
		SnoozeUntil:       rule.SnoozeUntil,
		CreatedAt:         rule.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         rule.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toEventResponses(events []*reminder.EventWithRule) []EventResponse {
	result := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		resp := EventResponse{
			ID:             ev.Event.ID,
			RuleID:         ev.Event.RuleID,
			Month:          ev.Event.Month,
			Status:         ev.Event.Status.String(),
			LinkedRecordID: ev.Event.LinkedRecordID,
			CreatedAt:      ev.Event.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if ev.Event.PromptedAt != nil {
			v := ev.Event.PromptedAt.Format("2006-01-02 15:04:05")
			resp.PromptedAt = &v
		}
		if ev.Event.AnsweredAt != nil {
			v := ev.Event.AnsweredAt.Format("2006-01-02 15:04:05")
			resp.AnsweredAt = &v
		}
		if ev.Rule != nil {
			resp.DisplayName = ev.Rule.DisplayName
			resp.ProviderKey = ev.Rule.ProviderKey
			resp.ExpectedStartDay = ev.Rule.ExpectedStartDay
			resp.ExpectedEndDay = ev.Rule.ExpectedEndDay
		}
		result = append(result, resp)
	}
	return result
}

func valueOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
