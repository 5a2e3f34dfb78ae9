// Package governbus enforces the write-side invariants shared by every
// governed entity: identifiers are store issued and never recycled, company
// ownership is stamped by the server and cannot be spoofed by a payload, and
// deletion is always a soft delete that retires the id forever.
package governbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/actions"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

// Set of error variables for governed writes.
var (
	ErrNoCompany = errors.New("scope has no company to own the entity")
	ErrNotFound  = errors.New("entity not found")
)

// Fields a client payload is never allowed to control. PrepareForCreation
// strips them before stamping the server-owned values.
var reservedFields = []string{
	"id",
	"company_id",
	"created_by",
	"date_created",
	"date_updated",
	"deleted_at",
	"deleted_by",
	"delete_note",
}

// Storer defines the behavior required by the governbus to interact with the
// database.
type Storer interface {
	Insert(ctx context.Context, cat category.Category, data map[string]any) (int64, error)
	SoftDelete(ctx context.Context, cat category.Category, entityID int64, companyID int64, deletedBy uuid.UUID, note string) error
	NameExists(ctx context.Context, cat category.Category, companyID int64, name string, excludeID *int64) (bool, error)
}

// Core manages the set of APIs for governed entity writes.
type Core struct {
	log        *logger.Logger
	companyBus *companybus.Core
	limitBus   *limitbus.Core
	auditBus   *auditbus.Core
	storer     Storer
}

// NewCore constructs a core for governed writes.
func NewCore(log *logger.Logger, companyBus *companybus.Core, limitBus *limitbus.Core, auditBus *auditbus.Core, storer Storer) *Core {
	return &Core{
		log:        log,
		companyBus: companyBus,
		limitBus:   limitBus,
		auditBus:   auditBus,
		storer:     storer,
	}
}

// PrepareForCreation sanitizes a creation payload: any client supplied id or
// ownership field is dropped, then the owning company, optional branch,
// creator and timestamps are stamped from the scope. The input map is not
// modified.
func (c *Core) PrepareForCreation(scope scopebus.TenantScope, cat category.Category, raw map[string]any) (map[string]any, error) {
	companyID, ok := scope.Company()
	if !ok {
		return nil, ErrNoCompany
	}

	data := make(map[string]any, len(raw)+5)
	for k, v := range raw {
		data[k] = v
	}

	for _, f := range reservedFields {
		delete(data, f)
	}
	delete(data, cat.Singular()+"_id")

	now := time.Now().UTC()

	data["company_id"] = companyID
	data["created_by"] = scope.UserID.String()
	data["date_created"] = now
	data["date_updated"] = now

	if _, supplied := data["branch_id"]; !supplied && cat != category.Branch {
		if branchID, ok := scope.Branch(); ok {
			data["branch_id"] = branchID
		}
	}

	return data, nil
}

// Create admits the entity against the company quota, sanitizes the payload
// and inserts it. The store issued id comes back on success and an audit
// event records the creation.
func (c *Core) Create(ctx context.Context, scope scopebus.TenantScope, cat category.Category, raw map[string]any) (int64, error) {
	ctx, span := otel.AddSpan(ctx, "business.governbus.create")
	defer span.End()

	if _, err := c.limitBus.Enforce(ctx, scope, cat); err != nil {
		return 0, fmt.Errorf("enforce: %w", err)
	}

	data, err := c.PrepareForCreation(scope, cat, raw)
	if err != nil {
		return 0, fmt.Errorf("prepareforcreation: %w", err)
	}

	id, err := c.storer.Insert(ctx, cat, data)
	if err != nil {
		return 0, fmt.Errorf("insert: category[%s]: %w", cat, err)
	}

	companyID, _ := scope.Company()
	c.auditBus.Record(ctx, auditbus.NewEvent{
		UserID:    scope.UserID,
		Action:    actions.EntityCreated,
		CompanyID: &companyID,
		Detail:    map[string]any{"category": cat.String(), "id": id},
	})

	return id, nil
}

// SoftDelete retires the entity without removing its row. The id is never
// reissued because issuance belongs to the store's monotonic generator.
func (c *Core) SoftDelete(ctx context.Context, scope scopebus.TenantScope, cat category.Category, entityID int64, note string) error {
	ctx, span := otel.AddSpan(ctx, "business.governbus.softdelete")
	defer span.End()

	companyID, ok := scope.Company()
	if !ok {
		return ErrNoCompany
	}

	if err := c.storer.SoftDelete(ctx, cat, entityID, companyID, scope.UserID, note); err != nil {
		return fmt.Errorf("softdelete: category[%s] id[%d]: %w", cat, entityID, err)
	}

	c.auditBus.Record(ctx, auditbus.NewEvent{
		UserID:    scope.UserID,
		Action:    actions.EntityDeleted,
		CompanyID: &companyID,
		Detail:    map[string]any{"category": cat.String(), "id": entityID, "note": note},
	})

	return nil
}

// NameExists probes for a case-insensitive duplicate name among the
// company's active entities. A soft deleted predecessor does not block the
// name; its id stays retired either way.
func (c *Core) NameExists(ctx context.Context, companyID int64, cat category.Category, name string, excludeID *int64) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.governbus.nameexists")
	defer span.End()

	exists, err := c.storer.NameExists(ctx, cat, companyID, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("nameexists: category[%s]: %w", cat, err)
	}

	return exists, nil
}

// SuspendCompany deactivates a tenant. Child entities and every issued
// identifier are preserved.
func (c *Core) SuspendCompany(ctx context.Context, scope scopebus.TenantScope, companyID int64) (companybus.Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.governbus.suspendcompany")
	defer span.End()

	comp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("querybyid: %w", err)
	}

	comp, err = c.companyBus.Suspend(ctx, comp)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("suspend: %w", err)
	}

	c.auditBus.Record(ctx, auditbus.NewEvent{
		UserID:    scope.UserID,
		Action:    actions.CompanySuspended,
		CompanyID: &companyID,
	})

	return comp, nil
}

// ReactivateCompany restores a suspended tenant. No identifiers are created;
// the company resumes with everything it had.
func (c *Core) ReactivateCompany(ctx context.Context, scope scopebus.TenantScope, companyID int64) (companybus.Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.governbus.reactivatecompany")
	defer span.End()

	comp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("querybyid: %w", err)
	}

	comp, err = c.companyBus.Reactivate(ctx, comp)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("reactivate: %w", err)
	}

	c.auditBus.Record(ctx, auditbus.NewEvent{
		UserID:    scope.UserID,
		Action:    actions.CompanyRestored,
		CompanyID: &companyID,
	})

	return comp, nil
}

// SoftDeleteCompany tombstones a tenant. Children and identifiers are kept; a
// future company with the same name is a fresh row with fresh ids.
func (c *Core) SoftDeleteCompany(ctx context.Context, scope scopebus.TenantScope, companyID int64, note string) (companybus.Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.governbus.softdeletecompany")
	defer span.End()

	comp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("querybyid: %w", err)
	}

	comp, err = c.companyBus.SoftDelete(ctx, comp, scope.UserID, note)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("softdelete: %w", err)
	}

	c.auditBus.Record(ctx, auditbus.NewEvent{
		UserID:    scope.UserID,
		Action:    actions.CompanyDeleted,
		CompanyID: &companyID,
		Detail:    map[string]any{"note": note},
	})

	return comp, nil
}
