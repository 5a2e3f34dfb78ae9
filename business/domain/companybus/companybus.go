// Package companybus provides business access to companies, the tenant root
// of the system. A company carries the subscription envelope (plan, enabled
// modules, per-category quotas) every other governance decision reads.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("company not found")
	ErrUniqueName = errors.New("company name is not unique")
)

// Storer defines the behavior required by the companybus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, comp Company) (int64, error)
	Update(ctx context.Context, comp Company) error
	QueryByID(ctx context.Context, companyID int64) (Company, error)
}

// Core manages the set of APIs for company access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for company api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the storer with a storer
// that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new company to the system.
func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	now := time.Now()

	comp := Company{
		Name:        nc.Name,
		Plan:        nc.Plan,
		Modules:     nc.Modules,
		Limits:      nc.Limits,
		Active:      true,
		DateCreated: now,
		DateUpdated: now,
	}

	id, err := c.storer.Create(ctx, comp)
	if err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}
	comp.ID = id

	return comp, nil
}

// QueryByID finds the company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID int64) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.querybyid")
	defer span.End()

	comp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%d]: %w", companyID, err)
	}

	return comp, nil
}

// Update modifies the subscription envelope of an existing company.
func (c *Core) Update(ctx context.Context, comp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.Name != nil {
		comp.Name = *uc.Name
	}

	if uc.Plan != nil {
		comp.Plan = *uc.Plan
	}

	if uc.Modules != nil {
		comp.Modules = uc.Modules
	}

	if uc.Limits != nil {
		comp.Limits = *uc.Limits
	}

	comp.DateUpdated = time.Now()

	if err := c.storer.Update(ctx, comp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return comp, nil
}

// Suspend deactivates the company. Suspended companies keep their data but
// fail every admission check until restored.
func (c *Core) Suspend(ctx context.Context, comp Company) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.suspend")
	defer span.End()

	comp.Active = false
	comp.DateUpdated = time.Now()

	if err := c.storer.Update(ctx, comp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return comp, nil
}

// Reactivate restores a suspended company.
func (c *Core) Reactivate(ctx context.Context, comp Company) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.reactivate")
	defer span.End()

	comp.Active = true
	comp.DateUpdated = time.Now()

	if err := c.storer.Update(ctx, comp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return comp, nil
}

// SoftDelete marks the company deleted without removing the row. The id is
// never reissued and the tombstone records who removed the tenant and why.
func (c *Core) SoftDelete(ctx context.Context, comp Company, deletedBy uuid.UUID, note string) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.softdelete")
	defer span.End()

	now := time.Now()

	comp.Active = false
	comp.DeletedAt = &now
	comp.DeletedBy = &deletedBy
	comp.DeleteNote = note
	comp.DateUpdated = now

	if err := c.storer.Update(ctx, comp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return comp, nil
}
