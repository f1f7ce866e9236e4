package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appidentity "github.com/propmanager/backend/internal/application/identity"
	appproperty "github.com/propmanager/backend/internal/application/property"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached reports after tenant writes
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// TenantService manages tenant accounts on behalf of admins
type TenantService struct {
	users      identity.UserRepository
	properties property.Repository
	txScope    TransactionScope
	reports    ReportInvalidator
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	users identity.UserRepository,
	properties property.Repository,
	txScope TransactionScope,
	reports ReportInvalidator,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		users:      users,
		properties: properties,
		txScope:    txScope,
		reports:    reports,
		logger:     logger,
	}
}

// List returns all tenants, newest first
func (s *TenantService) List(ctx context.Context) ([]appidentity.UserInfo, error) {
	users, err := s.users.FindByRole(ctx, identity.RoleTenant)
	if err != nil {
		return nil, err
	}
	out := make([]appidentity.UserInfo, len(users))
	for i, u := range users {
		out[i] = appidentity.ToUserInfo(u)
	}
	return out, nil
}

// Get returns a tenant with their properties
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantDetail, error) {
	user, err := findTenant(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	props, err := s.properties.FindByTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TenantDetail{
		UserInfo:   appidentity.ToUserInfo(user),
		Properties: appproperty.ToPropertyInfos(props),
	}, nil
}

// Create registers a tenant with a generated password and optionally lets a property to them
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*CreateTenantResult, error) {
	password, err := identity.GenerateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(input.Email, password, input.FirstName, input.LastName, identity.RoleTenant)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhone(input.Phone); err != nil {
		return nil, err
	}

	var assigned *property.Property
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
		}
		if err := repos.Users().Create(ctx, user); err != nil {
			return err
		}
		if input.PropertyID == nil {
			return nil
		}
		assigned, err = assignProperty(ctx, repos.Properties(), *input.PropertyID, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if assigned != nil {
		s.invalidateReports(ctx)
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", user.ID.String()),
		zap.String("email", user.Email))

	result := &CreateTenantResult{
		Tenant:            appidentity.ToUserInfo(user),
		TemporaryPassword: password,
	}
	if assigned != nil {
		info := appproperty.ToPropertyInfo(assigned)
		result.Property = &info
	}
	return result, nil
}

// Update applies a partial update to a tenant
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*appidentity.UserInfo, error) {
	user, err := findTenant(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && shared.NormalizeEmail(*input.Email) != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, shared.NormalizeEmail(*input.Email))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already in use")
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	first, last := user.FirstName, user.LastName
	if input.FirstName != nil {
		first = *input.FirstName
	}
	if input.LastName != nil {
		last = *input.LastName
	}
	if err := user.SetName(first, last); err != nil {
		return nil, err
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Tenant updated", zap.String("tenant_id", id.String()))

	info := appidentity.ToUserInfo(user)
	return &info, nil
}

// Delete unassigns the tenant's properties and removes the tenant in one transaction
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	var released int64
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := findTenant(ctx, repos.Users(), id); err != nil {
			return err
		}
		n, err := repos.Properties().UnassignTenant(ctx, id)
		if err != nil {
			return err
		}
		released = n
		return repos.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", id.String()),
		zap.Int64("properties_released", released))
	return nil
}

// AssignProperty lets a property to the tenant
func (s *TenantService) AssignProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (*appproperty.PropertyInfo, error) {
	var assigned *property.Property
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := findTenant(ctx, repos.Users(), tenantID); err != nil {
			return err
		}
		p, err := assignProperty(ctx, repos.Properties(), propertyID, tenantID)
		assigned = p
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	s.logger.Info("Property assigned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("property_id", propertyID.String()))

	info := appproperty.ToPropertyInfo(assigned)
	return &info, nil
}

func (s *TenantService) invalidateReports(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate report cache", zap.Error(err))
	}
}

// findTenant loads a user and requires the tenant role
func findTenant(ctx context.Context, users identity.UserRepository, id uuid.UUID) (*identity.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Tenant")
		}
		return nil, err
	}
	if !user.IsTenant() {
		return nil, shared.NotFound("Tenant")
	}
	return user, nil
}

func assignProperty(ctx context.Context, repo property.Repository, propertyID, tenantID uuid.UUID) (*property.Property, error) {
	p, err := repo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Property")
		}
		return nil, err
	}
	if err := p.AssignTenant(tenantID); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
