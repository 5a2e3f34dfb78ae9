package mid

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// Conventional keys the client uses to express scope preferences. Headers
// win; cookies are the fallback for browser sessions.
const (
	branchHeader  = "X-Branch-ID"
	companyHeader = "X-Company-ID"
	branchCookie  = "branch_id"
	companyCookie = "company_id"
)

// ResolveScope computes the tenant scope for the authenticated user, loads
// the feature view for it, and stores both in the context. It must run after
// Authenticate. An access-audit event classifying the request as platform or
// tenant access is recorded best effort.
func ResolveScope(scopeBus *scopebus.Core, featureBus *featurebus.Core, auditBus *auditbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			hints := scopebus.Hints{
				BranchID:  hintValue(r, branchHeader, branchCookie),
				CompanyID: hintValue(r, companyHeader, companyCookie),
			}

			scope, err := scopeBus.Resolve(ctx, userID, hints)
			if err != nil {
				if errors.Is(err, scopebus.ErrNoActiveAssignment) {
					return errs.New(errs.Unauthenticated, err)
				}
				return errs.Errorf(errs.Internal, "resolve scope: %s", err)
			}

			access, err := featureBus.Load(ctx, scope)
			if err != nil {
				return errs.Errorf(errs.Internal, "load feature access: %s", err)
			}

			evt := auditbus.NewEvent{
				UserID: userID,
				Action: scopefilter.Classification(scope),
			}
			if companyID, ok := scope.Company(); ok {
				evt.CompanyID = &companyID
			}
			auditBus.Record(ctx, evt)

			ctx = setScope(ctx, scope)
			ctx = setAccess(ctx, access)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// hintValue reads a numeric scope hint from the named header or cookie.
// Absent or non-numeric values mean no preference.
func hintValue(r *http.Request, header string, cookie string) *int64 {
	raw := r.Header.Get(header)

	if raw == "" {
		c, err := r.Cookie(cookie)
		if err != nil {
			return nil
		}
		raw = c.Value
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &v
}
