package featureapp

import (
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	ScopeBus   *scopebus.Core
	FeatureBus *featurebus.Core
	AuditBus   *auditbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	scoped := mid.ResolveScope(cfg.ScopeBus, cfg.FeatureBus, cfg.AuditBus)

	api := newApp(cfg.FeatureBus)

	app.HandlerFunc(http.MethodGet, version, "/features", api.query, authen, scoped)
	app.HandlerFunc(http.MethodGet, version, "/features/menus", api.queryMenus, authen, scoped)
	app.HandlerFunc(http.MethodGet, version, "/features/admission/{category}", api.admission, authen, scoped)
}
