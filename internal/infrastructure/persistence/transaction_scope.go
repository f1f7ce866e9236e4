package persistence

import (
	"context"

	apptenant "github.com/propmanager/backend/internal/application/tenant"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"gorm.io/gorm"
)

// GormTransactionScope runs tenant-management writes inside one GORM transaction
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn in a transaction. Returning an error rolls everything back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptenant.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) Properties() property.Repository {
	return NewGormPropertyRepository(r.tx)
}

var _ apptenant.TransactionScope = (*GormTransactionScope)(nil)
