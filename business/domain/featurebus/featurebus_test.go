package featurebus_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/plan"
	"github.com/nexorahq/nexora/business/types/rolelevel"
	"github.com/nexorahq/nexora/foundation/logger"
)

func int64Ptr(v int64) *int64 {
	return &v
}

type fakeCompanyStorer struct {
	company companybus.Company
}

func (f *fakeCompanyStorer) NewWithTx(_ sqldb.CommitRollbacker) (companybus.Storer, error) {
	return f, nil
}

func (f *fakeCompanyStorer) Create(_ context.Context, _ companybus.Company) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeCompanyStorer) Update(_ context.Context, _ companybus.Company) error {
	return errors.New("not implemented")
}

func (f *fakeCompanyStorer) QueryByID(_ context.Context, companyID int64) (companybus.Company, error) {
	if companyID != f.company.ID {
		return companybus.Company{}, companybus.ErrNotFound
	}
	return f.company, nil
}

type fakeCountStorer struct {
	count int
}

func (f *fakeCountStorer) CountActive(_ context.Context, _ int64, _ category.Category) (int, error) {
	return f.count, nil
}

type fakeMenuStorer struct {
	menus      []featurebus.Menu
	companyIDs map[int64][]int64
}

func (f *fakeMenuStorer) QueryMenus(_ context.Context) ([]featurebus.Menu, error) {
	return f.menus, nil
}

func (f *fakeMenuStorer) QueryCompanyMenuIDs(_ context.Context, companyID int64) ([]int64, error) {
	return f.companyIDs[companyID], nil
}

func testMenus() []featurebus.Menu {
	return []featurebus.Menu{
		{ID: 1, Name: "Dashboard", Path: "/dashboard", Module: module.Core, Position: 1},
		{ID: 2, Name: "Employees", Path: "/employees", Module: module.HR, Position: 2},
		{ID: 3, Name: "Payroll", Path: "/payroll", Module: module.Payroll, Position: 3},
	}
}

func newCore(comp companybus.Company, menuStorer *fakeMenuStorer) *featurebus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	companyBus := companybus.NewCore(log, &fakeCompanyStorer{company: comp})
	limitBus := limitbus.NewCore(log, companyBus, &fakeCountStorer{})
	return featurebus.NewCore(log, companyBus, limitBus, menuStorer)
}

func testCompany(mods ...module.Module) companybus.Company {
	return companybus.Company{
		ID:      1,
		Name:    name.MustParse("Acme Corp"),
		Plan:    plan.Standard,
		Modules: mods,
		Active:  true,
		Limits: companybus.Limits{
			Branches:  limit.MustBounded(3),
			Employees: limit.Unlimited,
		},
	}
}

func tenantScope() scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.User,
		CompanyID: int64Ptr(1),
		Scoped:    true,
	}
}

func platformScope() scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.Platform,
	}
}

// =============================================================================

func Test_Load_CoreIsAlwaysIncluded(t *testing.T) {
	core := newCore(testCompany(module.HR), &fakeMenuStorer{})

	access, err := core.Load(context.Background(), tenantScope())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !access.HasModule(module.Core) {
		t.Error("CORE must be part of every tenant's view")
	}

	if !access.HasModule(module.HR) {
		t.Error("subscribed module missing from the view")
	}

	if access.HasModule(module.Payroll) {
		t.Error("unsubscribed module present in the view")
	}
}

func Test_Load_PlatformSeesEverything(t *testing.T) {
	core := newCore(testCompany(), &fakeMenuStorer{})

	access, err := core.Load(context.Background(), platformScope())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !access.IsPlatform() {
		t.Fatal("expected a platform view")
	}

	for _, m := range []module.Module{module.Core, module.HR, module.Payroll, module.Finance} {
		if !access.HasModule(m) {
			t.Errorf("platform view must include %s", m)
		}
	}
}

func Test_RequireModule_UpgradeMessage(t *testing.T) {
	core := newCore(testCompany(module.HR), &fakeMenuStorer{})

	access, err := core.Load(context.Background(), tenantScope())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = core.RequireModule(access, module.Payroll)
	if !errors.Is(err, featurebus.ErrModuleDisabled) {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}

	if !strings.Contains(err.Error(), "PAYROLL") || !strings.Contains(err.Error(), "STANDARD") {
		t.Errorf("refusal must name the module and the plan, got %q", err)
	}
}

func Test_CanCreate_CombinesModuleAndQuota(t *testing.T) {
	core := newCore(testCompany(module.HR), &fakeMenuStorer{})
	scope := tenantScope()

	access, err := core.Load(context.Background(), scope)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d, err := core.CanCreate(context.Background(), scope, access, module.Core, category.Branch)
	if err != nil {
		t.Fatalf("CanCreate: %v", err)
	}
	if !d.Allowed {
		t.Error("expected admission under the branch quota")
	}

	if _, err := core.CanCreate(context.Background(), scope, access, module.Payroll, category.Branch); !errors.Is(err, featurebus.ErrModuleDisabled) {
		t.Errorf("expected the module gate to fire first, got %v", err)
	}
}

func Test_AccessibleMenus_FilteredByModule(t *testing.T) {
	storer := &fakeMenuStorer{menus: testMenus(), companyIDs: map[int64][]int64{}}
	core := newCore(testCompany(module.HR), storer)
	scope := tenantScope()

	access, err := core.Load(context.Background(), scope)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	menus, err := core.AccessibleMenus(context.Background(), scope, access)
	if err != nil {
		t.Fatalf("AccessibleMenus: %v", err)
	}

	var got []int64
	for _, m := range menus {
		got = append(got, m.ID)
	}

	if diff := cmp.Diff([]int64{1, 2}, got); diff != "" {
		t.Errorf("menu ids mismatch (-want +got):\n%s", diff)
	}
}

func Test_AccessibleMenus_CompanyAllowListIntersects(t *testing.T) {
	storer := &fakeMenuStorer{
		menus:      testMenus(),
		companyIDs: map[int64][]int64{1: {2}},
	}
	core := newCore(testCompany(module.HR), storer)
	scope := tenantScope()

	access, err := core.Load(context.Background(), scope)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	menus, err := core.AccessibleMenus(context.Background(), scope, access)
	if err != nil {
		t.Fatalf("AccessibleMenus: %v", err)
	}

	if len(menus) != 1 || menus[0].ID != 2 {
		t.Errorf("expected only the allow listed HR menu, got %+v", menus)
	}
}

func Test_AccessibleMenus_PlatformGetsFullRegistry(t *testing.T) {
	storer := &fakeMenuStorer{menus: testMenus()}
	core := newCore(testCompany(), storer)
	scope := platformScope()

	access, err := core.Load(context.Background(), scope)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	menus, err := core.AccessibleMenus(context.Background(), scope, access)
	if err != nil {
		t.Fatalf("AccessibleMenus: %v", err)
	}

	if len(menus) != len(testMenus()) {
		t.Errorf("platform must see every menu, got %d of %d", len(menus), len(testMenus()))
	}
}
