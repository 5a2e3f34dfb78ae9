// Package branchdb contains branch related query functionality. The branch
// table is the branch axis itself, so tenant filtering compares the row's own
// id rather than a branch_id column.
package branchdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/scopefilter"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

var filterOpts = scopefilter.Options{
	SelfBranch: true,
	IDColumn:   "branch_id",
}

// Store manages the set of APIs for branch database access.
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

// Query retrieves a list of branches the scope may see.
func (s *Store) Query(ctx context.Context, scope scopebus.TenantScope, filter branchbus.QueryFilter, orderBy order.By, page page.Page) ([]branchbus.Branch, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		branch_id, company_id, name, address, phone, active, created_by,
		date_created, date_updated, deleted_at
	FROM
		"public"."branch"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	if err := scopefilter.Apply(scope, buf, data, filterOpts); err != nil {
		return nil, fmt.Errorf("scopefilter: %w", err)
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbBrchs []branchDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbBrchs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusBranches(dbBrchs)
}

// Count returns the total number of branches the scope may see.
func (s *Store) Count(ctx context.Context, scope scopebus.TenantScope, filter branchbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."branch"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	if err := scopefilter.Apply(scope, buf, data, filterOpts); err != nil {
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

// Soft deleted branches are tombstones; the by-id lookup must not serve them.
const queryByID = `
	SELECT
		branch_id, company_id, name, address, phone, active, created_by,
		date_created, date_updated, deleted_at
	FROM
		"public"."branch"
	WHERE
		branch_id = :branch_id AND deleted_at IS NULL`

// QueryByID gets the specified branch from the database within the scope's
// visibility.
func (s *Store) QueryByID(ctx context.Context, scope scopebus.TenantScope, branchID int64) (branchbus.Branch, error) {
	data := map[string]any{
		"branch_id": branchID,
	}

	buf := bytes.NewBufferString(queryByID)
	if err := scopefilter.Apply(scope, buf, data, filterOpts); err != nil {
		return branchbus.Branch{}, fmt.Errorf("scopefilter: %w", err)
	}

	var dbBrch branchDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbBrch); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return branchbus.Branch{}, fmt.Errorf("db: %w", branchbus.ErrNotFound)
		}
		return branchbus.Branch{}, fmt.Errorf("db: %w", err)
	}

	return toBusBranch(dbBrch)
}
