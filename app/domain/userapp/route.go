package userapp

import (
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	UserBus    *userbus.Core
	ScopeBus   *scopebus.Core
	FeatureBus *featurebus.Core
	AuditBus   *auditbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	scoped := mid.ResolveScope(cfg.ScopeBus, cfg.FeatureBus, cfg.AuditBus)
	admin := mid.RequireRoleLevel(rolelevel.CompanyAdmin)

	api := newApp(cfg.UserBus, cfg.ScopeBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, scoped, admin)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, scoped, admin)
	app.HandlerFunc(http.MethodPost, version, "/users/{user_id}/roles", api.assignRole, authen, scoped, admin)
	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}/roles", api.revokeRoles, authen, scoped, admin)

	app.HandlerFunc(http.MethodGet, version, "/me", api.queryMe, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen)
}
