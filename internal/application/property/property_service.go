package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached reports after property writes
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PropertyService handles property use cases
type PropertyService struct {
	repo    property.Repository
	reports ReportInvalidator
	logger  *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(repo property.Repository, reports ReportInvalidator, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		repo:    repo,
		reports: reports,
		logger:  logger,
	}
}

// List returns one page of properties
func (s *PropertyService) List(ctx context.Context, input ListPropertiesInput) (*shared.Paginated[PropertyInfo], error) {
	filter := property.Filter{
		Filter: shared.Filter{
			Page:     input.Page,
			PageSize: input.PageSize,
			Search:   shared.SanitizeString(input.Search),
			OrderBy:  input.OrderBy,
			OrderDir: input.OrderDir,
		},
		Status: property.Status(input.Status),
		Type:   property.Type(input.Type),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, shared.InvalidInput("Invalid property status")
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, shared.InvalidInput("Invalid property type")
	}
	filter.Normalize()

	props, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToPropertyInfos(props), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a property by ID
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*PropertyInfo, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToPropertyInfo(p)
	return &info, nil
}

// Create adds a vacant property
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) (*PropertyInfo, error) {
	p, err := property.NewProperty(property.Details{
		Name:      input.Name,
		Address:   input.Address,
		Type:      property.Type(input.Type),
		Units:     input.Units,
		Bedrooms:  input.Bedrooms,
		Bathrooms: input.Bathrooms,
		Rent:      input.Rent,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("name", p.Name))

	info := ToPropertyInfo(p)
	return &info, nil
}

// Update applies a partial update
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*PropertyInfo, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	d := property.Details{
		Name:      p.Name,
		Address:   p.Address,
		Type:      p.Type,
		Units:     p.Units,
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Rent:      p.Rent,
	}
	if input.Name != nil {
		d.Name = *input.Name
	}
	if input.Address != nil {
		d.Address = *input.Address
	}
	if input.Type != nil {
		d.Type = property.Type(*input.Type)
	}
	if input.Units != nil {
		d.Units = *input.Units
	}
	if input.Bedrooms != nil {
		d.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		d.Bathrooms = *input.Bathrooms
	}
	if input.Rent != nil {
		d.Rent = *input.Rent
	}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := p.SetStatus(property.Status(*input.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Property updated", zap.String("property_id", p.ID.String()))

	info := ToPropertyInfo(p)
	return &info, nil
}

// Delete removes a property that has no tenant
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := p.CanDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Property deleted", zap.String("property_id", id.String()))
	return nil
}

// Count returns the number of properties; used by the connectivity probe
func (s *PropertyService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *PropertyService) find(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Property")
		}
		return nil, err
	}
	return p, nil
}

// invalidateReports drops cached reports; failures are only logged
func (s *PropertyService) invalidateReports(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate report cache", zap.Error(err))
	}
}
