// Package scopefilter injects tenant isolation predicates into store queries.
//
// Store layers never write company or branch WHERE clauses themselves. They
// hand their query buffer to Apply, which appends the predicates the resolved
// scope mandates. A query that bypasses this package has no tenant isolation,
// which is why the rules below fail closed: a scope that cannot be pinned to
// a company is rejected outright unless it belongs to a platform operator.
package scopefilter

import (
	"bytes"
	"errors"
	"strings"

	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/actions"
)

// ErrSecurityViolation means a non-platform scope reached a store without a
// company to filter by. Serving the query would leak rows across tenants, so
// the query is refused instead.
var ErrSecurityViolation = errors.New("tenant scope carries no company")

// Named parameters the predicates bind. Stores merge these into the data map
// they pass to the sqldb helpers.
const (
	ParamCompanyID = "scope_company_id"
	ParamBranchID  = "scope_branch_id"
)

// Options adjusts the predicates for the shape of the table being queried.
// The zero value filters on a company_id column and, for branch level scopes,
// a branch_id column.
type Options struct {
	// CompanyColumn overrides the column holding the owning company.
	// Defaults to "company_id".
	CompanyColumn string

	// BranchColumn overrides the column holding the owning branch. Defaults
	// to "branch_id".
	BranchColumn string

	// SelfBranch marks the table as the branch table itself: the branch
	// predicate compares the row's own id column rather than a branch_id
	// foreign key.
	SelfBranch bool

	// IDColumn names the primary key column used when SelfBranch is set.
	// Defaults to "branch_id".
	IDColumn string

	// Skip disables filtering entirely. Reserved for maintenance paths that
	// audit their use via actions.SkipFilter.
	Skip bool
}

func (o Options) companyColumn() string {
	if o.CompanyColumn != "" {
		return o.CompanyColumn
	}
	return "company_id"
}

func (o Options) branchColumn() string {
	if o.SelfBranch {
		if o.IDColumn != "" {
			return o.IDColumn
		}
		return "branch_id"
	}
	if o.BranchColumn != "" {
		return o.BranchColumn
	}
	return "branch_id"
}

// Predicates returns the WHERE conditions the scope requires along with the
// named parameters they bind. An unscoped platform scope yields no
// conditions. A non-platform scope without a company yields
// ErrSecurityViolation.
func Predicates(scope scopebus.TenantScope, opts Options) ([]string, map[string]any, error) {
	if opts.Skip {
		return nil, nil, nil
	}

	companyID, hasCompany := scope.Company()

	if !hasCompany {
		if scope.IsPlatform() {
			return nil, nil, nil
		}
		return nil, nil, ErrSecurityViolation
	}

	if scope.IsUnscopedPlatform() {
		return nil, nil, nil
	}

	conditions := []string{opts.companyColumn() + " = :" + ParamCompanyID}
	params := map[string]any{ParamCompanyID: companyID}

	// Company admins see every branch. Everyone below is pinned to the
	// branch their assignment names, when it names one.
	if branchID, ok := scope.Branch(); ok && !scope.RoleLevel.IsCompanyAdmin() {
		conditions = append(conditions, opts.branchColumn()+" = :"+ParamBranchID)
		params[ParamBranchID] = branchID
	}

	return conditions, params, nil
}

// Apply appends the scope's predicates to the query buffer and merges their
// bindings into data. A buffer that already contains a WHERE clause gets the
// predicates appended with AND; otherwise a WHERE clause is started. When the
// scope requires no filtering the buffer is left untouched.
func Apply(scope scopebus.TenantScope, buf *bytes.Buffer, data map[string]any, opts Options) error {
	conditions, params, err := Predicates(scope, opts)
	if err != nil {
		return err
	}

	if len(conditions) == 0 {
		return nil
	}

	if strings.Contains(buf.String(), "WHERE") {
		buf.WriteString(" AND ")
	} else {
		buf.WriteString(" WHERE ")
	}

	buf.WriteString(strings.Join(conditions, " AND "))

	for k, v := range params {
		data[k] = v
	}

	return nil
}

// Classification reports the audit action describing how the scope accesses
// data: unrestricted platform access or tenant-filtered access.
func Classification(scope scopebus.TenantScope) actions.Action {
	if scope.IsUnscopedPlatform() {
		return actions.PlatformAccess
	}
	return actions.TenantAccess
}
