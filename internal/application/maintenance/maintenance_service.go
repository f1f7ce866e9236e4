package maintenance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/maintenance"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaintenanceService handles repair request use cases
type MaintenanceService struct {
	requests   maintenance.Repository
	properties property.Repository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	requests maintenance.Repository,
	properties property.Repository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		requests:   requests,
		properties: properties,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create files a request on behalf of the caller.
// Tenants may only reference a property let to them.
func (s *MaintenanceService) Create(ctx context.Context, caller identity.Principal, input CreateRequestInput) (*RequestInfo, error) {
	if input.PropertyID != nil {
		p, err := s.properties.FindByID(ctx, *input.PropertyID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NotFound("Property")
			}
			return nil, err
		}
		if !caller.IsAdmin() && (p.TenantID == nil || *p.TenantID != caller.UserID) {
			return nil, shared.Forbidden("You can only file requests for your own property")
		}
	}

	req, err := maintenance.NewRequest(caller.UserID, input.Title, input.Description, input.PropertyID, maintenance.Priority(input.Priority))
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Maintenance request created",
		zap.String("request_id", req.ID.String()),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("priority", string(req.Priority)))

	info := ToRequestInfo(req)
	return &info, nil
}

// List returns requests visible to the caller, newest first
func (s *MaintenanceService) List(ctx context.Context, caller identity.Principal, status string) ([]RequestInfo, error) {
	filter := maintenance.Filter{Status: maintenance.Status(status)}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, shared.InvalidInput("Status must be one of: pending, in-progress, completed")
	}
	if !caller.IsAdmin() {
		id := caller.UserID
		filter.TenantID = &id
	}

	reqs, err := s.requests.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]RequestInfo, len(reqs))
	for i, r := range reqs {
		out[i] = ToRequestInfo(r)
	}
	return out, nil
}

// Get returns a request to its owner or an admin
func (s *MaintenanceService) Get(ctx context.Context, caller identity.Principal, id uuid.UUID) (*RequestInfo, error) {
	req, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessTenant(req.TenantID) {
		return nil, shared.Forbidden("You can only view your own maintenance requests")
	}
	info := ToRequestInfo(req)
	return &info, nil
}

// UpdateStatus moves a request along its lifecycle and notifies the requester
func (s *MaintenanceService) UpdateStatus(ctx context.Context, caller identity.Principal, id uuid.UUID, status string) (*RequestInfo, error) {
	req, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	prev, err := req.ChangeStatus(maintenance.Status(status))
	if err != nil {
		return nil, err
	}
	info := ToRequestInfo(req)
	if prev == req.Status {
		return &info, nil
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Maintenance status changed",
		zap.String("request_id", req.ID.String()),
		zap.String("from", string(prev)),
		zap.String("to", string(req.Status)))

	if s.publisher != nil {
		event := maintenance.NewStatusChangedEvent(req, prev, caller.UserID)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish maintenance status change", zap.Error(err))
		}
	}
	return &info, nil
}

func (s *MaintenanceService) find(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Maintenance request")
		}
		return nil, err
	}
	return req, nil
}
