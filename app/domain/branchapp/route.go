package branchapp

import (
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	BranchBus  *branchbus.Core
	ScopeBus   *scopebus.Core
	FeatureBus *featurebus.Core
	AuditBus   *auditbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	scoped := mid.ResolveScope(cfg.ScopeBus, cfg.FeatureBus, cfg.AuditBus)
	core := mid.RequireModule(cfg.FeatureBus, module.Core)
	admin := mid.RequireRoleLevel(rolelevel.CompanyAdmin)

	api := newApp(cfg.BranchBus)

	app.HandlerFunc(http.MethodGet, version, "/branches", api.query, authen, scoped, core)
	app.HandlerFunc(http.MethodGet, version, "/branches/{branch_id}", api.queryByID, authen, scoped, core)
	app.HandlerFunc(http.MethodPost, version, "/branches", api.create, authen, scoped, core, admin)
	app.HandlerFunc(http.MethodDelete, version, "/branches/{branch_id}", api.delete, authen, scoped, core, admin)
}
