package employeedb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

func Test_QueryByID_ExcludesDeletedRows(t *testing.T) {
	companyID := int64(7)
	branchID := int64(2)
	scope := scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.BranchAdmin,
		CompanyID: &companyID,
		BranchID:  &branchID,
	}

	data := map[string]any{
		"employee_id": int64(9),
	}

	buf := bytes.NewBufferString(queryByID)
	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		t.Fatalf("applying scope filter: %s", err)
	}

	q := buf.String()

	if !strings.Contains(q, "deleted_at IS NULL") {
		t.Errorf("by-id lookup must exclude soft deleted employees: %s", q)
	}

	if !strings.Contains(q, "company_id = :"+scopefilter.ParamCompanyID) {
		t.Errorf("by-id lookup must carry the company predicate: %s", q)
	}

	if !strings.Contains(q, "branch_id = :"+scopefilter.ParamBranchID) {
		t.Errorf("branch admins must stay pinned to their branch: %s", q)
	}
}
