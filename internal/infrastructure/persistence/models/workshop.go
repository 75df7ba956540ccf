package models

import (
	"encoding/json"

	"github.com/mazzel/portal/internal/domain/workshop"
)

// CustomerModel is the persistence model for workshop customers
type CustomerModel struct {
	BaseModel
	Name     string                `gorm:"type:varchar(200);not null;index"`
	Status   workshop.EntityStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Document string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *workshop.Customer {
	return &workshop.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Status:     m.Status,
		Document:   json.RawMessage(m.Document),
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *workshop.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Status = c.Status
	m.Document = string(c.Document)
}

// MaterialModel is the persistence model for workshop materials
type MaterialModel struct {
	BaseModel
	Name     string                `gorm:"type:varchar(200);not null;index"`
	Category string                `gorm:"type:varchar(100);index"`
	Status   workshop.EntityStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Document string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MaterialModel) TableName() string {
	return "materials"
}

// ToDomain converts the persistence model to a domain Material
func (m *MaterialModel) ToDomain() *workshop.Material {
	return &workshop.Material{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Status:     m.Status,
		Document:   json.RawMessage(m.Document),
	}
}

// FromDomain populates the persistence model from a domain Material
func (m *MaterialModel) FromDomain(mat *workshop.Material) {
	m.FromDomainBaseEntity(mat.BaseEntity)
	m.Name = mat.Name
	m.Category = mat.Category
	m.Status = mat.Status
	m.Document = string(mat.Document)
}

// NestingProjectModel is the persistence model for nesting projects
type NestingProjectModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null;index"`
	CustomerID *uint  `gorm:"column:customer_id;index"`
	Document   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (NestingProjectModel) TableName() string {
	return "nesting_projects"
}

// ToDomain converts the persistence model to a domain NestingProject
func (m *NestingProjectModel) ToDomain() *workshop.NestingProject {
	return &workshop.NestingProject{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CustomerID: m.CustomerID,
		Document:   json.RawMessage(m.Document),
	}
}

// FromDomain populates the persistence model from a domain NestingProject
func (m *NestingProjectModel) FromDomain(p *workshop.NestingProject) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.CustomerID = p.CustomerID
	m.Document = string(p.Document)
}
