// Package featurebus answers whether a resolved scope may use a subscription
// module and which menus it should see. Module access is a plan question, not
// a role question: a company admin on a plan without PAYROLL is refused the
// same way a regular user is.
package featurebus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

// ErrModuleDisabled means the scope's subscription does not include the
// requested module.
var ErrModuleDisabled = errors.New("module not enabled for subscription")

// Storer defines the behavior required by the featurebus to interact with
// the database.
type Storer interface {
	QueryMenus(ctx context.Context) ([]Menu, error)
	QueryCompanyMenuIDs(ctx context.Context, companyID int64) ([]int64, error)
}

// Core manages the set of APIs for feature access.
type Core struct {
	log        *logger.Logger
	companyBus *companybus.Core
	limitBus   *limitbus.Core
	storer     Storer
}

// NewCore constructs a core for feature access.
func NewCore(log *logger.Logger, companyBus *companybus.Core, limitBus *limitbus.Core, storer Storer) *Core {
	return &Core{
		log:        log,
		companyBus: companyBus,
		limitBus:   limitBus,
		storer:     storer,
	}
}

// Load builds the feature view for the scope. CORE is always part of the
// view: every tenant gets the base module regardless of plan.
func (c *Core) Load(ctx context.Context, scope scopebus.TenantScope) (Access, error) {
	ctx, span := otel.AddSpan(ctx, "business.featurebus.load")
	defer span.End()

	companyID, ok := scope.Company()
	if !ok {
		if scope.IsPlatform() {
			return Access{platform: true}, nil
		}
		return Access{}, fmt.Errorf("scope has no company: userID[%s]", scope.UserID)
	}

	comp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return Access{}, fmt.Errorf("querybyid: companyID[%d]: %w", companyID, err)
	}

	mods := comp.Modules
	if !hasModule(mods, module.Core) {
		mods = append([]module.Module{module.Core}, mods...)
	}

	return Access{
		Plan:    comp.Plan,
		Modules: mods,
		Limits:  comp.Limits,
	}, nil
}

// RequireModule fails with ErrModuleDisabled when the module is not part of
// the scope's subscription. The message names the plan so the caller can
// surface an upgrade prompt.
func (c *Core) RequireModule(access Access, m module.Module) error {
	if access.HasModule(m) {
		return nil
	}

	return fmt.Errorf("the %s module is not included in your %s plan, upgrade your subscription to use it: %w",
		m, access.Plan, ErrModuleDisabled)
}

// RequireAnyModule fails with ErrModuleDisabled when none of the modules is
// part of the scope's subscription.
func (c *Core) RequireAnyModule(access Access, mods ...module.Module) error {
	if access.HasAnyModule(mods...) {
		return nil
	}

	return fmt.Errorf("none of the requested modules are included in your %s plan, upgrade your subscription to use them: %w",
		access.Plan, ErrModuleDisabled)
}

// CanCreate reports whether the scope may create one more entity of the
// category, combining the module gate with the subscription quota.
func (c *Core) CanCreate(ctx context.Context, scope scopebus.TenantScope, access Access, m module.Module, cat category.Category) (limitbus.Decision, error) {
	if err := c.RequireModule(access, m); err != nil {
		return limitbus.Decision{}, err
	}

	d, err := c.limitBus.Check(ctx, scope, cat)
	if err != nil {
		return limitbus.Decision{}, fmt.Errorf("check: %w", err)
	}

	return d, nil
}

// AccessibleMenus returns the menu entries the scope should see, in display
// order. Platform operators get the full registry. Tenants get the
// intersection of their enabled modules with the company's menu allow list;
// a company without an allow list gets every menu its modules enable.
func (c *Core) AccessibleMenus(ctx context.Context, scope scopebus.TenantScope, access Access) ([]Menu, error) {
	ctx, span := otel.AddSpan(ctx, "business.featurebus.accessiblemenus")
	defer span.End()

	menus, err := c.storer.QueryMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("querymenus: %w", err)
	}

	if access.IsPlatform() {
		return menus, nil
	}

	var allowed map[int64]bool
	if companyID, ok := scope.Company(); ok {
		ids, err := c.storer.QueryCompanyMenuIDs(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("querycompanymenuids: companyID[%d]: %w", companyID, err)
		}

		if len(ids) > 0 {
			allowed = make(map[int64]bool, len(ids))
			for _, id := range ids {
				allowed[id] = true
			}
		}
	}

	accessible := make([]Menu, 0, len(menus))
	for _, menu := range menus {
		if !access.HasModule(menu.Module) {
			continue
		}
		if allowed != nil && !allowed[menu.ID] {
			continue
		}
		accessible = append(accessible, menu)
	}

	return accessible, nil
}

func hasModule(mods []module.Module, m module.Module) bool {
	for _, enabled := range mods {
		if enabled.Equal(m) {
			return true
		}
	}

	return false
}
