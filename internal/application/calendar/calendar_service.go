package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/calendar"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventInfo is the API view of a calendar event
type EventInfo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Property    string     `json:"property"`
	PropertyID  *uuid.UUID `json:"property_id"`
	Type        string     `json:"type"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Description string     `json:"description"`
	UserID      *uuid.UUID `json:"user_id"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toEventInfo(e *calendar.Event) EventInfo {
	return EventInfo{
		ID:          e.ID,
		Title:       e.Title,
		Property:    e.Property,
		PropertyID:  e.PropertyID,
		Type:        string(e.Type),
		Date:        e.Date,
		Time:        e.Time,
		Description: e.Description,
		UserID:      e.UserID,
		CreatedBy:   e.CreatedBy,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EventInput holds the editable attributes of an event
type EventInput struct {
	Title       string
	Property    string
	PropertyID  *uuid.UUID
	Type        string
	Date        string
	Time        string
	Description string
	UserID      *uuid.UUID
}

func (in EventInput) details() calendar.Details {
	return calendar.Details{
		Title:       in.Title,
		Property:    in.Property,
		PropertyID:  in.PropertyID,
		Type:        calendar.Type(in.Type),
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		UserID:      in.UserID,
	}
}

// CalendarService handles property calendar use cases
type CalendarService struct {
	repo       calendar.Repository
	properties property.Repository
	users      identity.UserRepository
	logger     *zap.Logger
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	repo calendar.Repository,
	properties property.Repository,
	users identity.UserRepository,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		repo:       repo,
		properties: properties,
		users:      users,
		logger:     logger,
	}
}

// List returns events in date order, optionally bounded by inclusive dates
func (s *CalendarService) List(ctx context.Context, from, to string) ([]EventInfo, error) {
	if from != "" && !shared.ValidateDate(from) {
		return nil, shared.InvalidInput("from must be in YYYY-MM-DD format")
	}
	if to != "" && !shared.ValidateDate(to) {
		return nil, shared.InvalidInput("to must be in YYYY-MM-DD format")
	}
	events, err := s.repo.FindAll(ctx, calendar.Filter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]EventInfo, len(events))
	for i, e := range events {
		out[i] = toEventInfo(e)
	}
	return out, nil
}

// Create schedules an event
func (s *CalendarService) Create(ctx context.Context, createdBy uuid.UUID, input EventInput) (*EventInfo, error) {
	e, err := calendar.NewEvent(input.details(), createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("Event created",
		zap.String("event_id", e.ID.String()),
		zap.String("date", e.Date))

	info := toEventInfo(e)
	return &info, nil
}

// Update replaces the editable attributes of an event
func (s *CalendarService) Update(ctx context.Context, id uuid.UUID, input EventInput) (*EventInfo, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Update(input.details()); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("Event updated", zap.String("event_id", e.ID.String()))

	info := toEventInfo(e)
	return &info, nil
}

// checkReferences resolves the optional property and attendee ids
func (s *CalendarService) checkReferences(ctx context.Context, input EventInput) error {
	if input.PropertyID != nil {
		if _, err := s.properties.FindByID(ctx, *input.PropertyID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("Property")
			}
			return err
		}
	}
	if input.UserID != nil {
		if _, err := s.users.FindByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("User")
			}
			return err
		}
	}
	return nil
}

// Delete removes an event
func (s *CalendarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Event")
		}
		return err
	}
	s.logger.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

// Confirm moves a scheduled event to confirmed. Admins and the attendee may do this.
func (s *CalendarService) Confirm(ctx context.Context, caller identity.Principal, id uuid.UUID) (*EventInfo, error) {
	return s.transition(ctx, caller, id, (*calendar.Event).Confirm)
}

// Complete finishes an event. Admins and the attendee may do this.
func (s *CalendarService) Complete(ctx context.Context, caller identity.Principal, id uuid.UUID) (*EventInfo, error) {
	return s.transition(ctx, caller, id, (*calendar.Event).Complete)
}

func (s *CalendarService) transition(ctx context.Context, caller identity.Principal, id uuid.UUID, apply func(*calendar.Event) error) (*EventInfo, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !e.IsAttendee(caller.UserID) {
		return nil, shared.Forbidden("Only an admin or the attendee can change this event")
	}
	if err := apply(e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("Event status changed",
		zap.String("event_id", e.ID.String()),
		zap.String("status", string(e.Status)))

	info := toEventInfo(e)
	return &info, nil
}

func (s *CalendarService) find(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Event")
		}
		return nil, err
	}
	return e, nil
}
