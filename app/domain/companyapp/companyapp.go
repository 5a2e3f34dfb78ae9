package companyapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// app manages the set of app layer api functions for the company domain.
type app struct {
	companyBus *companybus.Core
	governBus  *governbus.Core
}

func newApp(companyBus *companybus.Core, governBus *governbus.Core) *app {
	return &app{
		companyBus: companyBus,
		governBus:  governBus,
	}
}

// executeUnderTransaction constructs a new app value within a database
// transaction when one has been started by the middleware.
func (a *app) executeUnderTransaction(ctx context.Context) (*app, error) {
	if tx, err := mid.GetTran(ctx); err == nil {
		companyBus, err := a.companyBus.NewWithTx(tx)
		if err != nil {
			return nil, err
		}

		a = &app{
			companyBus: companyBus,
			governBus:  a.governBus,
		}

		return a, nil
	}

	return a, nil
}

// create onboards a new tenant with its subscription envelope.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	a, err := a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	var app NewCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nc, err := toBusNewCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	comp, err := a.companyBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueName) {
			return errs.New(errs.Aborted, companybus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: comp[%+v]: %s", app, err)
	}

	return toAppCompany(comp)
}

// queryByID returns a company by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := parseCompanyID(r)
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	comp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: companyID[%d]: %s", companyID, err)
	}

	return toAppCompany(comp)
}

// update changes a company's subscription data.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := parseCompanyID(r)
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	comp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: companyID[%d]: %s", companyID, err)
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updComp, err := a.companyBus.Update(ctx, comp, uc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueName) {
			return errs.New(errs.Aborted, companybus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: companyID[%d] uc[%+v]: %s", companyID, app, err)
	}

	return toAppCompany(updComp)
}

// suspend turns a company inactive. Existing data remains readable but the
// tenant cannot add new resources while suspended.
func (a *app) suspend(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := parseCompanyID(r)
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	comp, err := a.governBus.SuspendCompany(ctx, scope, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "suspend: companyID[%d]: %s", companyID, err)
	}

	return toAppCompany(comp)
}

// reactivate turns a suspended company active again.
func (a *app) reactivate(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := parseCompanyID(r)
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	comp, err := a.governBus.ReactivateCompany(ctx, scope, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "reactivate: companyID[%d]: %s", companyID, err)
	}

	return toAppCompany(comp)
}

// delete soft deletes a company with an audit note. Nothing is physically
// removed.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	var app DeleteCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := parseCompanyID(r)
	if err != nil {
		return errs.NewFieldErrors("company_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	if _, err := a.governBus.SoftDeleteCompany(ctx, scope, companyID, app.Note); err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: companyID[%d]: %s", companyID, err)
	}

	return nil
}

func parseCompanyID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("company_id"), 10, 64)
}
