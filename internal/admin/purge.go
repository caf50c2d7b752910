package admin

import (
	"context"
	"fmt"

	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// purgeTables lists every table child-first so row deletion never trips a
// foreign key.
var purgeTables = []string{
	"sale_line_items",
	"sales",
	"inventory_records",
	"tires",
	"customers",
	"advisors",
}

type database interface {
	Dialect() string
	Exec(ctx context.Context, query string, args ...any) *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service wipes every domain table. Meant for resets between demo runs, never
// exposed over HTTP.
type Service interface {
	Purge(ctx context.Context) error
}

type service struct {
	db   database
	logg *logger.Logger
}

// NewService builds the purge service.
func NewService(db database, logg *logger.Logger) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("database required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{db: db, logg: logg}, nil
}

// Purge removes all rows from every domain table in one transaction. On
// sqlite the trailing VACUUM runs outside the transaction and its failure is
// only logged.
func (s *service) Purge(ctx context.Context) error {
	if s.db.Dialect() == "postgres" {
		return s.purgePostgres(ctx)
	}
	return s.purgeSQLite(ctx)
}

func (s *service) purgePostgres(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		stmt := "TRUNCATE sale_line_items, sales, inventory_records, tires, customers, advisors RESTART IDENTITY CASCADE"
		if err := tx.WithContext(ctx).Exec(stmt).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "truncate tables")
		}
		return nil
	})
}

func (s *service) purgeSQLite(ctx context.Context) error {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "disable foreign keys")
		}

		var combined error
		for _, table := range purgeTables {
			if err := tx.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
				combined = multierr.Append(combined, fmt.Errorf("purge %s: %w", table, err))
			}
		}

		if err := tx.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			combined = multierr.Append(combined, fmt.Errorf("re-enable foreign keys: %w", err))
		}
		if combined != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "purge tables")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// best effort, a failed vacuum leaves the data correct
	if err := s.db.Exec(ctx, "VACUUM").Error; err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("vacuum after purge failed: %v", err))
	}
	return nil
}
