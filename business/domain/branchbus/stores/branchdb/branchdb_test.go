package branchdb

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
	scope := scopebus.TenantScope{
		UserID:    uuid.New(),
		RoleLevel: rolelevel.CompanyAdmin,
		CompanyID: &companyID,
	}

	data := map[string]any{
		"branch_id": int64(3),
	}

	buf := bytes.NewBufferString(queryByID)
	if err := scopefilter.Apply(scope, buf, data, filterOpts); err != nil {
		t.Fatalf("applying scope filter: %s", err)
	}

	q := buf.String()

	if !strings.Contains(q, "deleted_at IS NULL") {
		t.Errorf("by-id lookup must exclude soft deleted branches: %s", q)
	}

	if !strings.Contains(q, "company_id = :"+scopefilter.ParamCompanyID) {
		t.Errorf("by-id lookup must carry the company predicate: %s", q)
	}

	if got := data[scopefilter.ParamCompanyID]; got != companyID {
		t.Errorf("got company binding %v, want %d", got, companyID)
	}
}
