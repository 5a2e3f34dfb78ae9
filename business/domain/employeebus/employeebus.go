// Package employeebus provides business access to employees. Reads are
// tenant filtered through the resolved scope; writes go through the governor.
package employeebus

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
	ErrNotFound   = errors.New("employee not found")
	ErrUniqueName = errors.New("employee name is not unique within the company")
)

// Storer defines the behavior required by the employeebus to interact with
// the database. Every query takes the resolved scope so the store can apply
// tenant filtering.
type Storer interface {
	Query(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter, orderBy order.By, page page.Page) ([]Employee, error)
	Count(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, scope scopebus.TenantScope, employeeID int64) (Employee, error)
}

// Core manages the set of APIs for employee access.
type Core struct {
	log       *logger.Logger
	governBus *governbus.Core
	storer    Storer
}

// NewCore constructs a core for employee api access.
func NewCore(log *logger.Logger, governBus *governbus.Core, storer Storer) *Core {
	return &Core{
		log:       log,
		governBus: governBus,
		storer:    storer,
	}
}

// Create admits and inserts a new employee under the scope's company.
func (c *Core) Create(ctx context.Context, scope scopebus.TenantScope, ne NewEmployee) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.create")
	defer span.End()

	companyID, ok := scope.Company()
	if !ok {
		return Employee{}, fmt.Errorf("create: %w", governbus.ErrNoCompany)
	}

	exists, err := c.governBus.NameExists(ctx, companyID, category.Employee, ne.Name.String(), nil)
	if err != nil {
		return Employee{}, fmt.Errorf("nameexists: %w", err)
	}
	if exists {
		return Employee{}, ErrUniqueName
	}

	raw := map[string]any{
		"name":   ne.Name.String(),
		"active": true,
	}
	if ne.Email != nil {
		raw["email"] = ne.Email.Address
	}
	if ne.Phone.Valid() {
		raw["phone"] = ne.Phone.String()
	}
	if ne.BranchID != nil {
		raw["branch_id"] = *ne.BranchID
	}
	if ne.UserID != nil {
		raw["user_id"] = ne.UserID.String()
	}

	id, err := c.governBus.Create(ctx, scope, category.Employee, raw)
	if err != nil {
		return Employee{}, fmt.Errorf("create: %w", err)
	}

	emp, err := c.storer.QueryByID(ctx, scope, id)
	if err != nil {
		return Employee{}, fmt.Errorf("querybyid: employeeID[%d]: %w", id, err)
	}

	return emp, nil
}

// Query retrieves a list of employees visible to the scope.
func (c *Core) Query(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter, orderBy order.By, page page.Page) ([]Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.query")
	defer span.End()

	emps, err := c.storer.Query(ctx, scope, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return emps, nil
}

// Count returns the total number of employees visible to the scope.
func (c *Core) Count(ctx context.Context, scope scopebus.TenantScope, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.count")
	defer span.End()

	return c.storer.Count(ctx, scope, filter)
}

// QueryByID finds the employee by the specified ID within the scope's
// visibility.
func (c *Core) QueryByID(ctx context.Context, scope scopebus.TenantScope, employeeID int64) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.querybyid")
	defer span.End()

	emp, err := c.storer.QueryByID(ctx, scope, employeeID)
	if err != nil {
		return Employee{}, fmt.Errorf("query: employeeID[%d]: %w", employeeID, err)
	}

	return emp, nil
}

// SoftDelete retires the employee. The row and its id are preserved forever.
func (c *Core) SoftDelete(ctx context.Context, scope scopebus.TenantScope, emp Employee, note string) error {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.softdelete")
	defer span.End()

	if err := c.governBus.SoftDelete(ctx, scope, category.Employee, emp.ID, note); err != nil {
		return fmt.Errorf("softdelete: %w", err)
	}

	return nil
}
