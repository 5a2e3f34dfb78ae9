// Package employeedb contains employee related query functionality. The
// employee table carries both ownership columns, so tenant filtering uses the
// default company_id/branch_id predicates.
package employeedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for employee database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Query retrieves a list of employees the scope may see.
func (s *Store) Query(ctx context.Context, scope scopebus.TenantScope, filter employeebus.QueryFilter, orderBy order.By, page page.Page) ([]employeebus.Employee, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		employee_id, company_id, branch_id, user_id, name, email, phone, active,
		created_by, date_created, date_updated, deleted_at
	FROM
		"public"."employee"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		return nil, fmt.Errorf("scopefilter: %w", err)
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbEmps []employeeDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbEmps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEmployees(dbEmps)
}

// Count returns the total number of employees the scope may see.
func (s *Store) Count(ctx context.Context, scope scopebus.TenantScope, filter employeebus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."employee"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		return 0, fmt.Errorf("scopefilter: %w", err)
	}

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// Soft deleted employees are tombstones; the by-id lookup must not serve them.
const queryByID = `
	SELECT
		employee_id, company_id, branch_id, user_id, name, email, phone, active,
		created_by, date_created, date_updated, deleted_at
	FROM
		"public"."employee"
	WHERE
		employee_id = :employee_id AND deleted_at IS NULL`

// QueryByID gets the specified employee from the database within the scope's
// visibility.
func (s *Store) QueryByID(ctx context.Context, scope scopebus.TenantScope, employeeID int64) (employeebus.Employee, error) {
	data := map[string]any{
		"employee_id": employeeID,
	}

	buf := bytes.NewBufferString(queryByID)
	if err := scopefilter.Apply(scope, buf, data, scopefilter.Options{}); err != nil {
		return employeebus.Employee{}, fmt.Errorf("scopefilter: %w", err)
	}

	var dbEmp employeeDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbEmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return employeebus.Employee{}, fmt.Errorf("db: %w", employeebus.ErrNotFound)
		}
		return employeebus.Employee{}, fmt.Errorf("db: %w", err)
	}

	return toBusEmployee(dbEmp)
}
