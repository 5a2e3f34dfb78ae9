package featureapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/module"
)

// categoryModules maps each governed category to the module that owns its
// screens. Admission checks gate on the owning module before the quota.
var categoryModules = map[category.Category]module.Module{
	category.Branch:      module.Core,
	category.Employee:    module.HR,
	category.Department:  module.Core,
	category.Designation: module.Core,
}

// app manages the set of app layer api functions for the feature domain.
type app struct {
	featureBus *featurebus.Core
}

func newApp(featureBus *featurebus.Core) *app {
	return &app{
		featureBus: featureBus,
	}
}

// query returns the feature view of the caller's resolved scope.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	access, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	return toAppAccess(access)
}

// queryMenus returns the menu entries the caller should see.
func (a *app) queryMenus(ctx context.Context, _ *http.Request) web.Encoder {
	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	access, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	menus, err := a.featureBus.AccessibleMenus(ctx, scope, access)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "accessiblemenus: %s", err)
	}

	return toAppMenus(menus)
}

// admission reports whether the scope may create one more entity of the
// category. It never mutates anything; creation re-checks under the
// governor.
func (a *app) admission(ctx context.Context, r *http.Request) web.Encoder {
	cat, err := category.Parse(r.PathValue("category"))
	if err != nil {
		return errs.NewFieldErrors("category", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	access, err := mid.GetAccess(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "access missing in context: %s", err)
	}

	d, err := a.featureBus.CanCreate(ctx, scope, access, categoryModules[cat], cat)
	if err != nil {
		if errors.Is(err, featurebus.ErrModuleDisabled) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "cancreate: category[%s]: %s", cat, err)
	}

	return toAppAdmission(d)
}
