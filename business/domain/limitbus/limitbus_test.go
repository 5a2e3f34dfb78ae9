package limitbus_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/limit"
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

func newCore(comp companybus.Company, count int) *limitbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	companyBus := companybus.NewCore(log, &fakeCompanyStorer{company: comp})
	return limitbus.NewCore(log, companyBus, &fakeCountStorer{count: count})
}

func company(branchLimit limit.Limit) companybus.Company {
	return companybus.Company{
		ID:     1,
		Name:   name.MustParse("Acme Corp"),
		Plan:   plan.Basic,
		Active: true,
		Limits: companybus.Limits{
			Branches: branchLimit,
		},
	}
}

func tenantScope() scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.CompanyAdmin,
		CompanyID: int64Ptr(1),
		Scoped:    true,
	}
}

func Test_Check_UnlimitedAlwaysAdmits(t *testing.T) {
	core := newCore(company(limit.Unlimited), 100000)

	d, err := core.Check(context.Background(), tenantScope(), category.Branch)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if !d.Allowed {
		t.Error("unlimited quota must always admit")
	}
}

func Test_Check_UnderLimitAdmitsWithRemaining(t *testing.T) {
	core := newCore(company(limit.MustBounded(2)), 0)

	d, err := core.Check(context.Background(), tenantScope(), category.Branch)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if !d.Allowed {
		t.Fatal("expected admission with 0 of 2 used")
	}

	if d.Remaining != 1 {
		t.Errorf("remaining after this creation: got %d, want 1", d.Remaining)
	}
}

func Test_Check_AtLimitRefusesWithUpgradeMessage(t *testing.T) {
	core := newCore(company(limit.MustBounded(2)), 2)

	d, err := core.Check(context.Background(), tenantScope(), category.Branch)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if d.Allowed {
		t.Fatal("expected refusal with 2 of 2 used")
	}

	want := "your BASIC plan allows 2 branches and you already have 2 active; upgrade your plan to add more"
	if d.Message != want {
		t.Errorf("message:\ngot  %q\nwant %q", d.Message, want)
	}
}

func Test_Check_SuspendedCompanyRefuses(t *testing.T) {
	comp := company(limit.Unlimited)
	comp.Active = false
	core := newCore(comp, 0)

	d, err := core.Check(context.Background(), tenantScope(), category.Branch)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if d.Allowed || !d.Suspended {
		t.Fatalf("expected suspended refusal, got %+v", d)
	}

	if !strings.Contains(d.Message, "suspended") {
		t.Errorf("message should name the suspension, got %q", d.Message)
	}
}

func Test_Check_UnscopedPlatformBypasses(t *testing.T) {
	core := newCore(company(limit.MustBounded(1)), 1)

	scope := scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.Platform,
	}

	d, err := core.Check(context.Background(), scope, category.Branch)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if !d.Allowed {
		t.Error("an unscoped platform operator is never quota limited")
	}
}

func Test_Enforce_ErrorKinds(t *testing.T) {
	core := newCore(company(limit.MustBounded(1)), 1)

	if _, err := core.Enforce(context.Background(), tenantScope(), category.Branch); !errors.Is(err, limitbus.ErrLimitExceeded) {
		t.Errorf("expected ErrLimitExceeded, got %v", err)
	}

	comp := company(limit.Unlimited)
	comp.Active = false
	core = newCore(comp, 0)

	if _, err := core.Enforce(context.Background(), tenantScope(), category.Branch); !errors.Is(err, limitbus.ErrCompanyInactive) {
		t.Errorf("expected ErrCompanyInactive, got %v", err)
	}
}
