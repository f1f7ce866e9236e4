package models

import (
	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/calendar"
)

// EventModel is the persistence model for calendar.Event
type EventModel struct {
	BaseModel
	Title       string          `gorm:"type:varchar(200);not null"`
	Property    string          `gorm:"type:varchar(200);not null"`
	PropertyID  *uuid.UUID      `gorm:"type:uuid;index"`
	Type        calendar.Type   `gorm:"type:varchar(20);not null"`
	Date        string          `gorm:"type:varchar(10);not null;index"`
	Time        string          `gorm:"type:varchar(5)"`
	Description string          `gorm:"type:text"`
	UserID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	Status      calendar.Status `gorm:"type:varchar(20);not null;default:'scheduled'"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event
func (m *EventModel) ToDomain() *calendar.Event {
	return &calendar.Event{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Property:    m.Property,
		PropertyID:  m.PropertyID,
		Type:        m.Type,
		Date:        m.Date,
		Time:        m.Time,
		Description: m.Description,
		UserID:      m.UserID,
		CreatedBy:   m.CreatedBy,
		Status:      m.Status,
	}
}

// EventModelFromDomain creates a persistence model from a domain Event
func EventModelFromDomain(e *calendar.Event) *EventModel {
	m := &EventModel{
		Title:       e.Title,
		Property:    e.Property,
		PropertyID:  e.PropertyID,
		Type:        e.Type,
		Date:        e.Date,
		Time:        e.Time,
		Description: e.Description,
		UserID:      e.UserID,
		CreatedBy:   e.CreatedBy,
		Status:      e.Status,
	}
	m.BaseModel.FromDomain(e.BaseEntity)
	return m
}
