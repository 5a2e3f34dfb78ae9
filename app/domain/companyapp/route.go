package companyapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/rolelevel"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	DB         *sqlx.DB
	Auth       *auth.Auth
	CompanyBus *companybus.Core
	GovernBus  *governbus.Core
	ScopeBus   *scopebus.Core
	FeatureBus *featurebus.Core
	AuditBus   *auditbus.Core
}

// Routes adds specific routes for this group. Company lifecycle is platform
// territory; every route demands a platform level scope.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	scoped := mid.ResolveScope(cfg.ScopeBus, cfg.FeatureBus, cfg.AuditBus)
	platform := mid.RequireRoleLevel(rolelevel.Platform)
	transaction := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	api := newApp(cfg.CompanyBus, cfg.GovernBus)

	app.HandlerFunc(http.MethodPost, version, "/companies", api.create, authen, scoped, platform, transaction)
	app.HandlerFunc(http.MethodGet, version, "/companies/{company_id}", api.queryByID, authen, scoped, platform)
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}", api.update, authen, scoped, platform)
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}/suspend", api.suspend, authen, scoped, platform)
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}/reactivate", api.reactivate, authen, scoped, platform)
	app.HandlerFunc(http.MethodDelete, version, "/companies/{company_id}", api.delete, authen, scoped, platform)
}
