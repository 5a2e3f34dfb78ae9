package governbus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/actions"
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

// =============================================================================
// Fakes

type fakeCompanyStorer struct {
	company companybus.Company
	updated []companybus.Company
}

func (f *fakeCompanyStorer) NewWithTx(_ sqldb.CommitRollbacker) (companybus.Storer, error) {
	return f, nil
}

func (f *fakeCompanyStorer) Create(_ context.Context, _ companybus.Company) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeCompanyStorer) Update(_ context.Context, comp companybus.Company) error {
	f.updated = append(f.updated, comp)
	f.company = comp
	return nil
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

type fakeAuditStorer struct {
	events []auditbus.Event
}

func (f *fakeAuditStorer) Create(_ context.Context, evt auditbus.Event) error {
	f.events = append(f.events, evt)
	return nil
}

type fakeGovernStorer struct {
	nextID   int64
	inserted []map[string]any
	deleted  []int64
	names    map[string]bool
}

func (f *fakeGovernStorer) Insert(_ context.Context, _ category.Category, data map[string]any) (int64, error) {
	f.nextID++
	f.inserted = append(f.inserted, data)
	return f.nextID, nil
}

func (f *fakeGovernStorer) SoftDelete(_ context.Context, _ category.Category, entityID int64, _ int64, _ uuid.UUID, _ string) error {
	f.deleted = append(f.deleted, entityID)
	return nil
}

func (f *fakeGovernStorer) NameExists(_ context.Context, _ category.Category, _ int64, nm string, _ *int64) (bool, error) {
	return f.names[nm], nil
}

// =============================================================================

type harness struct {
	core    *governbus.Core
	company *fakeCompanyStorer
	govern  *fakeGovernStorer
	audit   *fakeAuditStorer
}

func newHarness(branchLimit limit.Limit, active bool, count int) *harness {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	companyStorer := &fakeCompanyStorer{
		company: companybus.Company{
			ID:     1,
			Name:   name.MustParse("Acme Corp"),
			Plan:   plan.Basic,
			Active: active,
			Limits: companybus.Limits{
				Branches:  branchLimit,
				Employees: limit.Unlimited,
			},
		},
	}

	companyBus := companybus.NewCore(log, companyStorer)
	limitBus := limitbus.NewCore(log, companyBus, &fakeCountStorer{count: count})
	auditStorer := &fakeAuditStorer{}
	auditBus := auditbus.NewCore(log, auditStorer)
	governStorer := &fakeGovernStorer{names: map[string]bool{}}

	return &harness{
		core:    governbus.NewCore(log, companyBus, limitBus, auditBus, governStorer),
		company: companyStorer,
		govern:  governStorer,
		audit:   auditStorer,
	}
}

func adminScope() scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.CompanyAdmin,
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

func Test_PrepareForCreation_StripsReservedFields(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)
	scope := adminScope()

	raw := map[string]any{
		"name":        "North Branch",
		"id":          999,
		"branch_id":   888,
		"company_id":  777,
		"created_by":  "intruder",
		"deleted_at":  "never",
		"delete_note": "nope",
	}

	data, err := h.core.PrepareForCreation(scope, category.Branch, raw)
	if err != nil {
		t.Fatalf("PrepareForCreation: %v", err)
	}

	for _, f := range []string{"id", "deleted_at", "delete_note"} {
		if _, exists := data[f]; exists {
			t.Errorf("reserved field %q survived sanitization", f)
		}
	}

	if data["company_id"] != int64(1) {
		t.Errorf("company_id: got %v, want the scope's company 1", data["company_id"])
	}

	if data["created_by"] != scope.UserID.String() {
		t.Errorf("created_by: got %v, want the scope's user", data["created_by"])
	}

	if data["name"] != "North Branch" {
		t.Errorf("payload fields must survive, got %v", data["name"])
	}

	// The id column of the category itself is reserved too.
	if _, exists := data["branch_id"]; exists {
		t.Error("a branch payload cannot choose its own branch_id")
	}

	if len(raw) != 7 {
		t.Error("the input map must not be modified")
	}
}

func Test_PrepareForCreation_InheritsScopeBranch(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)

	scope := adminScope()
	scope.RoleLevel = rolelevel.User
	scope.BranchID = int64Ptr(5)

	data, err := h.core.PrepareForCreation(scope, category.Employee, map[string]any{"name": "Ana"})
	if err != nil {
		t.Fatalf("PrepareForCreation: %v", err)
	}

	if data["branch_id"] != int64(5) {
		t.Errorf("branch_id: got %v, want inherited branch 5", data["branch_id"])
	}
}

func Test_PrepareForCreation_NoCompany(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)

	_, err := h.core.PrepareForCreation(platformScope(), category.Branch, map[string]any{})
	if !errors.Is(err, governbus.ErrNoCompany) {
		t.Fatalf("expected ErrNoCompany, got %v", err)
	}
}

func Test_Create_EnforcesQuotaAndAudits(t *testing.T) {
	h := newHarness(limit.MustBounded(2), true, 0)
	scope := adminScope()

	id, err := h.core.Create(context.Background(), scope, category.Branch, map[string]any{"name": "North"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if id != 1 {
		t.Errorf("id: got %d, want the store issued 1", id)
	}

	if len(h.audit.events) != 1 || !h.audit.events[0].Action.Equal(actions.EntityCreated) {
		t.Errorf("expected one ENTITY_CREATED audit event, got %+v", h.audit.events)
	}
}

func Test_Create_RefusedAtQuota(t *testing.T) {
	h := newHarness(limit.MustBounded(2), true, 2)

	_, err := h.core.Create(context.Background(), adminScope(), category.Branch, map[string]any{"name": "North"})
	if !errors.Is(err, limitbus.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}

	if len(h.govern.inserted) != 0 {
		t.Error("a refused creation must not reach the store")
	}
}

func Test_Create_RefusedWhenSuspended(t *testing.T) {
	h := newHarness(limit.Unlimited, false, 0)

	_, err := h.core.Create(context.Background(), adminScope(), category.Branch, map[string]any{"name": "North"})
	if !errors.Is(err, limitbus.ErrCompanyInactive) {
		t.Fatalf("expected ErrCompanyInactive, got %v", err)
	}
}

func Test_SoftDelete_Audits(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)

	if err := h.core.SoftDelete(context.Background(), adminScope(), category.Branch, 7, "closing down"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if len(h.govern.deleted) != 1 || h.govern.deleted[0] != 7 {
		t.Errorf("expected soft delete of id 7, got %v", h.govern.deleted)
	}

	if len(h.audit.events) != 1 || !h.audit.events[0].Action.Equal(actions.EntityDeleted) {
		t.Errorf("expected one ENTITY_DELETED audit event, got %+v", h.audit.events)
	}
}

func Test_CompanyLifecycle_Audits(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)
	scope := platformScope()
	ctx := context.Background()

	comp, err := h.core.SuspendCompany(ctx, scope, 1)
	if err != nil {
		t.Fatalf("SuspendCompany: %v", err)
	}
	if comp.Active {
		t.Error("suspended company must be inactive")
	}

	comp, err = h.core.ReactivateCompany(ctx, scope, 1)
	if err != nil {
		t.Fatalf("ReactivateCompany: %v", err)
	}
	if !comp.Active {
		t.Error("reactivated company must be active")
	}

	comp, err = h.core.SoftDeleteCompany(ctx, scope, 1, "churned")
	if err != nil {
		t.Fatalf("SoftDeleteCompany: %v", err)
	}
	if !comp.Deleted() {
		t.Error("soft deleted company must carry a tombstone")
	}

	want := []actions.Action{actions.CompanySuspended, actions.CompanyRestored, actions.CompanyDeleted}
	if len(h.audit.events) != len(want) {
		t.Fatalf("expected %d audit events, got %d", len(want), len(h.audit.events))
	}
	for i, a := range want {
		if !h.audit.events[i].Action.Equal(a) {
			t.Errorf("event %d: got %s, want %s", i, h.audit.events[i].Action, a)
		}
	}
}

func Test_NameExists(t *testing.T) {
	h := newHarness(limit.Unlimited, true, 0)
	h.govern.names["North"] = true

	exists, err := h.core.NameExists(context.Background(), 1, category.Branch, "North", nil)
	if err != nil {
		t.Fatalf("NameExists: %v", err)
	}
	if !exists {
		t.Error("expected the name to exist")
	}

	exists, err = h.core.NameExists(context.Background(), 1, category.Branch, "South", nil)
	if err != nil {
		t.Fatalf("NameExists: %v", err)
	}
	if exists {
		t.Error("expected the name to be free")
	}
}
