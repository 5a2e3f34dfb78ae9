package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/app/sdk/query"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// app manages the set of app layer api functions for the user domain.
type app struct {
	userBus  *userbus.Core
	scopeBus *scopebus.Core
}

// newApp constructs a user app API for use.
func newApp(userBus *userbus.Core, scopeBus *scopebus.Core) *app {
	return &app{
		userBus:  userBus,
		scopeBus: scopeBus,
	}
}

// create adds a new user to the system.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		if errors.Is(err, userbus.ErrUniquePhone) {
			return errs.New(errs.Aborted, userbus.ErrUniquePhone)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: usr[%+v]: %s", usr, err)
	}

	return toAppUser(usr)
}

// update updates the calling user's own identity data.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user id missing in context: %s", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: userID[%s]: %s", userID, err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s] uu[%+v]: %s", usr.ID, uu, err)
	}

	return toAppUser(updUsr)
}

// assignRole grants a role to a user. A scoped admin can only grant roles
// within their own company.
func (a *app) assignRole(ctx context.Context, r *http.Request) web.Encoder {
	var app AssignRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	scope, err := mid.GetScope(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope missing in context: %s", err)
	}

	na := toBusNewAssignment(userID, app)

	if !scope.IsPlatform() {
		companyID, ok := scope.Company()
		if !ok {
			return errs.Errorf(errs.PermissionDenied, "scope has no company")
		}
		if na.CompanyID == nil || *na.CompanyID != companyID {
			return errs.Errorf(errs.PermissionDenied, "cannot assign roles outside your own company")
		}
	}

	if err := a.scopeBus.Assign(ctx, na); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "assign: userID[%s] roleID[%d]: %s", userID, na.RoleID, err)
	}

	return nil
}

// revokeRoles deactivates all of a user's role assignments.
func (a *app) revokeRoles(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	if err := a.scopeBus.Revoke(ctx, userID); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "revoke: userID[%s]: %s", userID, err)
	}

	return nil
}

// query returns a list of users with paging.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

// queryMe returns the calling user's own identity data.
func (a *app) queryMe(ctx context.Context, _ *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user id missing in context: %s", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: userID[%s]: %s", userID, err)
	}

	return toAppUser(usr)
}
