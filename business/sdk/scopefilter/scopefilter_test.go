package scopefilter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/types/actions"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func platformScope() scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.Platform,
	}
}

func tenantScope(level rolelevel.Level, companyID int64, branchID *int64) scopebus.TenantScope {
	return scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: level,
		CompanyID: int64Ptr(companyID),
		BranchID:  branchID,
		Scoped:    true,
	}
}

func Test_Apply_UnscopedPlatformLeavesQueryUntouched(t *testing.T) {
	const q = "SELECT branch_id, name FROM branch WHERE deleted_at IS NULL"

	buf := bytes.NewBufferString(q)
	data := map[string]any{}

	if err := scopefilter.Apply(platformScope(), buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := buf.String(); got != q {
		t.Errorf("query modified for unscoped platform scope:\ngot  %q\nwant %q", got, q)
	}

	if len(data) != 0 {
		t.Errorf("expected no bindings, got %v", data)
	}
}

func Test_Apply_CompanyPredicate(t *testing.T) {
	scope := tenantScope(rolelevel.CompanyAdmin, 7, nil)

	buf := bytes.NewBufferString("SELECT employee_id FROM employee")
	data := map[string]any{}

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "SELECT employee_id FROM employee WHERE company_id = :scope_company_id"
	if got := buf.String(); got != want {
		t.Errorf("query:\ngot  %q\nwant %q", got, want)
	}

	wantData := map[string]any{"scope_company_id": int64(7)}
	if diff := cmp.Diff(wantData, data); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func Test_Apply_BranchScopedUser(t *testing.T) {
	scope := tenantScope(rolelevel.User, 7, int64Ptr(3))

	buf := bytes.NewBufferString("SELECT employee_id FROM employee WHERE deleted_at IS NULL")
	data := map[string]any{}

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "SELECT employee_id FROM employee WHERE deleted_at IS NULL AND company_id = :scope_company_id AND branch_id = :scope_branch_id"
	if got := buf.String(); got != want {
		t.Errorf("query:\ngot  %q\nwant %q", got, want)
	}

	wantData := map[string]any{
		"scope_company_id": int64(7),
		"scope_branch_id":  int64(3),
	}
	if diff := cmp.Diff(wantData, data); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func Test_Apply_CompanyAdminSeesEveryBranch(t *testing.T) {
	scope := tenantScope(rolelevel.CompanyAdmin, 7, int64Ptr(3))

	buf := bytes.NewBufferString("SELECT employee_id FROM employee")
	data := map[string]any{}

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "SELECT employee_id FROM employee WHERE company_id = :scope_company_id"
	if got := buf.String(); got != want {
		t.Errorf("branch predicate applied to company admin:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Apply_SelfBranchComparesOwnID(t *testing.T) {
	scope := tenantScope(rolelevel.BranchAdmin, 7, int64Ptr(3))

	buf := bytes.NewBufferString("SELECT branch_id FROM branch")
	data := map[string]any{}

	opts := scopefilter.Options{SelfBranch: true, IDColumn: "branch_id"}
	if err := scopefilter.Apply(scope, buf, data, opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "SELECT branch_id FROM branch WHERE company_id = :scope_company_id AND branch_id = :scope_branch_id"
	if got := buf.String(); got != want {
		t.Errorf("query:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Apply_ScopedPlatformIsFiltered(t *testing.T) {
	scope := platformScope()
	scope.CompanyID = int64Ptr(42)
	scope.Scoped = true

	buf := bytes.NewBufferString("SELECT branch_id FROM branch")
	data := map[string]any{}

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "SELECT branch_id FROM branch WHERE company_id = :scope_company_id"
	if got := buf.String(); got != want {
		t.Errorf("scoped platform scope must be filtered like a tenant:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Predicates_NoCompanyFailsClosed(t *testing.T) {
	scope := scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.User,
	}

	_, _, err := scopefilter.Predicates(scope, scopefilter.Options{})
	if !errors.Is(err, scopefilter.ErrSecurityViolation) {
		t.Fatalf("expected ErrSecurityViolation, got %v", err)
	}
}

func Test_Predicates_SkipDisablesFiltering(t *testing.T) {
	scope := tenantScope(rolelevel.User, 7, int64Ptr(3))

	conditions, params, err := scopefilter.Predicates(scope, scopefilter.Options{Skip: true})
	if err != nil {
		t.Fatalf("Predicates: %v", err)
	}

	if len(conditions) != 0 || len(params) != 0 {
		t.Errorf("skip must yield no predicates, got %v / %v", conditions, params)
	}
}

func Test_Classification(t *testing.T) {
	if got := scopefilter.Classification(platformScope()); !got.Equal(actions.PlatformAccess) {
		t.Errorf("unscoped platform: got %s, want %s", got, actions.PlatformAccess)
	}

	if got := scopefilter.Classification(tenantScope(rolelevel.User, 7, nil)); !got.Equal(actions.TenantAccess) {
		t.Errorf("tenant scope: got %s, want %s", got, actions.TenantAccess)
	}
}
