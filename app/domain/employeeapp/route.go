package employeeapp

import (
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	EmployeeBus *employeebus.Core
	ScopeBus    *scopebus.Core
	FeatureBus  *featurebus.Core
	AuditBus    *auditbus.Core
}

// Routes adds specific routes for this group. Employee management belongs to
// the HR module.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	scoped := mid.ResolveScope(cfg.ScopeBus, cfg.FeatureBus, cfg.AuditBus)
	hr := mid.RequireModule(cfg.FeatureBus, module.HR)
	admin := mid.RequireRoleLevel(rolelevel.BranchAdmin)

	api := newApp(cfg.EmployeeBus)

	app.HandlerFunc(http.MethodGet, version, "/employees", api.query, authen, scoped, hr)
	app.HandlerFunc(http.MethodGet, version, "/employees/{employee_id}", api.queryByID, authen, scoped, hr)
	app.HandlerFunc(http.MethodPost, version, "/employees", api.create, authen, scoped, hr, admin)
	app.HandlerFunc(http.MethodDelete, version, "/employees/{employee_id}", api.delete, authen, scoped, hr, admin)
}
