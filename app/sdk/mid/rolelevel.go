package mid

import (
	"context"
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// RequireRoleLevel refuses the request when the resolved scope's role level
// is below the minimum. It must run after ResolveScope.
func RequireRoleLevel(min rolelevel.Level) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			scope, err := GetScope(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if !scope.RoleLevel.AtLeast(min) {
				return errs.Errorf(errs.PermissionDenied, "role level %d required, have %d", min.Int(), scope.RoleLevel.Int())
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
