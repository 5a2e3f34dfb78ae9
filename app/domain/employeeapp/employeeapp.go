package employeeapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/app/sdk/query"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// app manages the set of app layer api functions for the employee domain.
type app struct {
	employeeBus *employeebus.Core
}

func newApp(employeeBus *employeebus.Core) *app {
	return &app{
		employeeBus: employeeBus,
	}
}

// create adds a new employee inside the caller's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	ne, err := toBusNewEmployee(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	emp, err := a.employeeBus.Create(ctx, scope, ne)
	if err != nil {
		switch {
		case errors.Is(err, employeebus.ErrUniqueName):
			return errs.New(errs.Aborted, employeebus.ErrUniqueName)
		case errors.Is(err, limitbus.ErrLimitExceeded), errors.Is(err, limitbus.ErrCompanyInactive):
			return errs.New(errs.ResourceExhausted, err)
		case errors.Is(err, governbus.ErrNoCompany):
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: emp[%+v]: %s", app, err)
	}

	return toAppEmployee(emp)
}

// query returns a list of employees visible to the caller's scope.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, employeebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	emps, err := a.employeeBus.Query(ctx, scope, filter, orderBy, page)
	if err != nil {
		if errors.Is(err, scopefilter.ErrSecurityViolation) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.employeeBus.Count(ctx, scope, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppEmployees(emps), total, page)
}

// queryByID returns an employee by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	employeeID, err := strconv.ParseInt(r.PathValue("employee_id"), 10, 64)
	if err != nil {
		return errs.NewFieldErrors("employee_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	emp, err := a.employeeBus.QueryByID(ctx, scope, employeeID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: employeeID[%d]: %s", employeeID, err)
	}

	return toAppEmployee(emp)
}

// delete soft deletes an employee with an audit note.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	var app DeleteEmployee
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	employeeID, err := strconv.ParseInt(r.PathValue("employee_id"), 10, 64)
	if err != nil {
		return errs.NewFieldErrors("employee_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	emp, err := a.employeeBus.QueryByID(ctx, scope, employeeID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: employeeID[%d]: %s", employeeID, err)
	}

	if err := a.employeeBus.SoftDelete(ctx, scope, emp, app.Note); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: employeeID[%d]: %s", employeeID, err)
	}

	return nil
}
