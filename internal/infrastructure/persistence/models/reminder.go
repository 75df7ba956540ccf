package models

import (
	"time"

	"github.com/mazzel/portal/internal/domain/reminder"
)

// RuleModel is the persistence model for bill reminder rules
type RuleModel struct {
	BaseModel
	User              string `gorm:"type:varchar(100);not null;uniqueIndex:idx_rules_user_provider,priority:1"`
	ProviderKey       string `gorm:"type:varchar(200);not null;uniqueIndex:idx_rules_user_provider,priority:2;column:provider_key"`
	DisplayName       string `gorm:"type:varchar(200);not null;column:display_name"`
	Enabled           bool   `gorm:"not null;default:true"`
	ExpectedStartDay  int    `gorm:"not null;check:expected_start_day >= 1 AND expected_start_day <= 28;column:expected_start_day"`
	ExpectedEndDay    int    `gorm:"not null;check:expected_end_day >= 1 AND expected_end_day <= 28;column:expected_end_day"`
	LeadDays          int    `gorm:"not null;default:3;check:lead_days >= 0 AND lead_days <= 14;column:lead_days"`
	LastPromptedMonth string `gorm:"type:varchar(7);column:last_prompted_month"`
	SnoozeUntil       string `gorm:"type:varchar(10);column:snooze_until"`

	Events []EventModel `gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (RuleModel) TableName() string {
	return "bill_reminder_rules"
}

// ToDomain converts the persistence model to a domain Rule
func (m *RuleModel) ToDomain() *reminder.Rule {
	return &reminder.Rule{
		BaseEntity:        m.BaseModel.ToDomain(),
		User:              m.User,
		ProviderKey:       m.ProviderKey,
		DisplayName:       m.DisplayName,
		Enabled:           m.Enabled,
		ExpectedStartDay:  m.ExpectedStartDay,
		ExpectedEndDay:    m.ExpectedEndDay,
		LeadDays:          m.LeadDays,
		LastPromptedMonth: m.LastPromptedMonth,
		SnoozeUntil:       m.SnoozeUntil,
	}
}

// FromDomain populates the persistence model from a domain Rule
func (m *RuleModel) FromDomain(r *reminder.Rule) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.User = r.User
	m.ProviderKey = r.ProviderKey
	m.DisplayName = r.DisplayName
	m.Enabled = r.Enabled
	m.ExpectedStartDay = r.ExpectedStartDay
	m.ExpectedEndDay = r.ExpectedEndDay
	m.LeadDays = r.LeadDays
	m.LastPromptedMonth = r.LastPromptedMonth
	m.SnoozeUntil = r.SnoozeUntil
}

// RuleModelFromDomain creates a new persistence model from a domain Rule
func RuleModelFromDomain(r *reminder.Rule) *RuleModel {
	m := &RuleModel{}
	m.FromDomain(r)
	return m
}

// EventModel is the persistence model for bill reminder events. Events are
// cascade-deleted with their rule; the record link is cleared, not
// cascaded, when the record is deleted.
type EventModel struct {
	BaseModel
	RuleID         uint                 `gorm:"not null;uniqueIndex:idx_events_rule_month,priority:1;column:rule_id"`
	Month          string               `gorm:"type:varchar(7);not null;uniqueIndex:idx_events_rule_month,priority:2"`
	Status         reminder.EventStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PromptedAt     *time.Time           `gorm:"column:prompted_at"`
	AnsweredAt     *time.Time           `gorm:"column:answered_at"`
	LinkedRecordID *uint                `gorm:"column:linked_record_id;index"`

	LinkedRecord *RecordModel `gorm:"foreignKey:LinkedRecordID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "bill_reminder_events"
}

// ToDomain converts the persistence model to a domain Event
func (m *EventModel) ToDomain() *reminder.Event {
	return &reminder.Event{
		BaseEntity:     m.BaseModel.ToDomain(),
		RuleID:         m.RuleID,
		Month:          m.Month,
		Status:         m.Status,
		PromptedAt:     m.PromptedAt,
		AnsweredAt:     m.AnsweredAt,
		LinkedRecordID: m.LinkedRecordID,
	}
}

// FromDomain populates the persistence model from a domain Event
func (m *EventModel) FromDomain(e *reminder.Event) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.RuleID = e.RuleID
	m.Month = e.Month
	m.Status = e.Status
	m.PromptedAt = e.PromptedAt
	m.AnsweredAt = e.AnsweredAt
	m.LinkedRecordID = e.LinkedRecordID
}

// EventModelFromDomain creates a new persistence model from a domain Event
func EventModelFromDomain(e *reminder.Event) *EventModel {
	m := &EventModel{}
	m.FromDomain(e)
	return m
}
