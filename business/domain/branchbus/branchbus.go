// Package branchbus provides business access to branches. Reads are tenant
// filtered through the resolved scope; writes go through the governor so
// ownership stamping, quotas and soft deletes cannot be bypassed.
package branchbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("branch not found")
	ErrUniqueName = errors.New("branch name is not unique within the company")
)

// Storer defines the behavior required by the branchbus to interact with the
// database. Every query takes the resolved scope so the store can apply
// tenant filtering.
type Storer interface {
	Query(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter, orderBy order.By, page page.Page) ([]Branch, error)
	Count(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, scope scopebus.TenantScope, branchID int64) (Branch, error)
}

// Core manages the set of APIs for branch access.
type Core struct {
	log       *logger.Logger
	governBus *governbus.Core
	storer    Storer
}

// NewCore constructs a core for branch api access.
func NewCore(log *logger.Logger, governBus *governbus.Core, storer Storer) *Core {
	return &Core{
		log:       log,
		governBus: governBus,
		storer:    storer,
	}
}

// Create admits and inserts a new branch under the scope's company.
func (c *Core) Create(ctx context.Context, scope scopebus.TenantScope, nb NewBranch) (Branch, error) {
	ctx, span := otel.AddSpan(ctx, "business.branchbus.create")
	defer span.End()

	companyID, ok := scope.Company()
	if !ok {
		return Branch{}, fmt.Errorf("create: %w", governbus.ErrNoCompany)
	}

	exists, err := c.governBus.NameExists(ctx, companyID, category.Branch, nb.Name.String(), nil)
	if err != nil {
		return Branch{}, fmt.Errorf("nameexists: %w", err)
	}
	if exists {
		return Branch{}, ErrUniqueName
	}

	raw := map[string]any{
		"name":    nb.Name.String(),
		"address": nb.Address,
		"active":  true,
	}
	if nb.Phone.Valid() {
		raw["phone"] = nb.Phone.String()
	}

	id, err := c.governBus.Create(ctx, scope, category.Branch, raw)
	if err != nil {
		return Branch{}, fmt.Errorf("create: %w", err)
	}

	branch, err := c.storer.QueryByID(ctx, scope, id)
	if err != nil {
		return Branch{}, fmt.Errorf("querybyid: branchID[%d]: %w", id, err)
	}

	return branch, nil
}

// Query retrieves a list of branches visible to the scope.
func (c *Core) Query(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter, orderBy order.By, page page.Page) ([]Branch, error) {
	ctx, span := otel.AddSpan(ctx, "business.branchbus.query")
	defer span.End()

	branches, err := c.storer.Query(ctx, scope, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return branches, nil
}

// Count returns the total number of branches visible to the scope.
func (c *Core) Count(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.branchbus.count")
	defer span.End()

	return c.storer.Count(ctx, scope, filter)
}

// QueryByID finds the branch by the specified ID within the scope's
// visibility.
func (c *Core) QueryByID(ctx context.Context, scope scopebus.TenantScope, branchID int64) (Branch, error) {
	ctx, span := otel.AddSpan(ctx, "business.branchbus.querybyid")
	defer span.End()

	branch, err := c.storer.QueryByID(ctx, scope, branchID)
	if err != nil {
		return Branch{}, fmt.Errorf("query: branchID[%d]: %w", branchID, err)
	}

	return branch, nil
}

// SoftDelete retires the branch. The row and its id are preserved forever.
func (c *Core) SoftDelete(ctx context.Context, scope scopebus.TenantScope, branch Branch, note string) error {
	ctx, span := otel.AddSpan(ctx, "business.branchbus.softdelete")
	defer span.End()

	if err := c.governBus.SoftDelete(ctx, scope, category.Branch, branch.ID, note); err != nil {
		return fmt.Errorf("softdelete: %w", err)
	}

	return nil
}
