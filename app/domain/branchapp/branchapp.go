package branchapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/app/sdk/query"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// app manages the set of app layer api functions for the branch domain.
type app struct {
	branchBus *branchbus.Core
}

func newApp(branchBus *branchbus.Core) *app {
	return &app{
		branchBus: branchBus,
	}
}

// create adds a new branch inside the caller's company. Quota and
// subscription state are checked by the governor before the row exists.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewBranch
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	nb, err := toBusNewBranch(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	brn, err := a.branchBus.Create(ctx, scope, nb)
	if err != nil {
		switch {
		case errors.Is(err, branchbus.ErrUniqueName):
			return errs.New(errs.Aborted, branchbus.ErrUniqueName)
		case errors.Is(err, limitbus.ErrLimitExceeded), errors.Is(err, limitbus.ErrCompanyInactive):
			return errs.New(errs.ResourceExhausted, err)
		case errors.Is(err, governbus.ErrNoCompany):
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: brn[%+v]: %s", app, err)
	}

	return toAppBranch(brn)
}

// query returns a list of branches visible to the caller's scope.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, branchbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	brns, err := a.branchBus.Query(ctx, scope, filter, orderBy, page)
	if err != nil {
		if errors.Is(err, scopefilter.ErrSecurityViolation) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.branchBus.Count(ctx, scope, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppBranches(brns), total, page)
}

// queryByID returns a branch by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	branchID, err := strconv.ParseInt(r.PathValue("branch_id"), 10, 64)
	if err != nil {
		return errs.NewFieldErrors("branch_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	brn, err := a.branchBus.QueryByID(ctx, scope, branchID)
	if err != nil {
		if errors.Is(err, branchbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: branchID[%d]: %s", branchID, err)
	}

	return toAppBranch(brn)
}

// delete soft deletes a branch with an audit note.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	var app DeleteBranch
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	branchID, err := strconv.ParseInt(r.PathValue("branch_id"), 10, 64)
	if err != nil {
		return errs.NewFieldErrors("branch_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	brn, err := a.branchBus.QueryByID(ctx, scope, branchID)
	if err != nil {
		if errors.Is(err, branchbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: branchID[%d]: %s", branchID, err)
	}

	if err := a.branchBus.SoftDelete(ctx, scope, brn, app.Note); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: branchID[%d]: %s", branchID, err)
	}

	return nil
}
