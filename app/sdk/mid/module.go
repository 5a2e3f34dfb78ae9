package mid

import (
	"context"
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/module"
)

// RequireModule refuses the request when the scope's subscription does not
// include the module. It must run after ResolveScope.
func RequireModule(featureBus *featurebus.Core, m module.Module) web.MidFunc {
	mw := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			access, err := GetAccess(ctx)
			if err != nil {
				return errs.New(errs.Internal, err)
			}

			if err := featureBus.RequireModule(access, m); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return mw
}

// RequireAnyModule refuses the request when none of the modules is part of
// the scope's subscription.
func RequireAnyModule(featureBus *featurebus.Core, mods ...module.Module) web.MidFunc {
	mw := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			access, err := GetAccess(ctx)
			if err != nil {
				return errs.New(errs.Internal, err)
			}

			if err := featureBus.RequireAnyModule(access, mods...); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return mw
}
