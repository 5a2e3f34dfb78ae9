package all

import (
	"time"

	"github.com/nexorahq/nexora/app/domain/authapp"
	"github.com/nexorahq/nexora/app/domain/branchapp"
	"github.com/nexorahq/nexora/app/domain/checkapp"
	"github.com/nexorahq/nexora/app/domain/companyapp"
	"github.com/nexorahq/nexora/app/domain/employeeapp"
	"github.com/nexorahq/nexora/app/domain/featureapp"
	"github.com/nexorahq/nexora/app/domain/roleapp"
	"github.com/nexorahq/nexora/app/domain/userapp"
	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/mux"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/auditbus/stores/auditdb"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/domain/branchbus/stores/branchdb"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/companybus/stores/companycache"
	"github.com/nexorahq/nexora/business/domain/companybus/stores/companydb"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/domain/employeebus/stores/employeedb"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/featurebus/stores/menudb"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/governbus/stores/governdb"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/limitbus/stores/limitdb"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/domain/rolebus/stores/rolecache"
	"github.com/nexorahq/nexora/business/domain/rolebus/stores/roledb"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/domain/scopebus/stores/scopedb"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/domain/userbus/stores/usercache"
	"github.com/nexorahq/nexora/business/domain/userbus/stores/userdb"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	userBus := userbus.NewCore(cfg.Log, usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	roleBus := rolebus.NewCore(cfg.Log, rolecache.NewStore(cfg.Log, roledb.NewStore(cfg.Log, cfg.DB), time.Hour))
	scopeBus := scopebus.NewCore(cfg.Log, scopedb.NewStore(cfg.Log, cfg.DB))
	companyBus := companybus.NewCore(cfg.Log, companycache.NewStore(cfg.Log, companydb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	limitBus := limitbus.NewCore(cfg.Log, companyBus, limitdb.NewStore(cfg.Log, cfg.DB))
	featureBus := featurebus.NewCore(cfg.Log, companyBus, limitBus, menudb.NewStore(cfg.Log, cfg.DB))
	auditBus := auditbus.NewCore(cfg.Log, auditdb.NewStore(cfg.Log, cfg.DB))
	governBus := governbus.NewCore(cfg.Log, companyBus, limitBus, auditBus, governdb.NewStore(cfg.Log, cfg.DB))
	branchBus := branchbus.NewCore(cfg.Log, governBus, branchdb.NewStore(cfg.Log, cfg.DB))
	employeeBus := employeebus.NewCore(cfg.Log, governBus, employeedb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	roleapp.Routes(app, roleapp.Config{
		Auth:    authClient,
		RoleBus: roleBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:       authClient,
		UserBus:    userBus,
		ScopeBus:   scopeBus,
		FeatureBus: featureBus,
		AuditBus:   auditBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Log:        cfg.Log,
		DB:         cfg.DB,
		Auth:       authClient,
		CompanyBus: companyBus,
		GovernBus:  governBus,
		ScopeBus:   scopeBus,
		FeatureBus: featureBus,
		AuditBus:   auditBus,
	})

	branchapp.Routes(app, branchapp.Config{
		Auth:       authClient,
		BranchBus:  branchBus,
		ScopeBus:   scopeBus,
		FeatureBus: featureBus,
		AuditBus:   auditBus,
	})

	employeeapp.Routes(app, employeeapp.Config{
		Auth:        authClient,
		EmployeeBus: employeeBus,
		ScopeBus:    scopeBus,
		FeatureBus:  featureBus,
		AuditBus:    auditBus,
	})

	featureapp.Routes(app, featureapp.Config{
		Auth:       authClient,
		ScopeBus:   scopeBus,
		FeatureBus: featureBus,
		AuditBus:   auditBus,
	})
}
