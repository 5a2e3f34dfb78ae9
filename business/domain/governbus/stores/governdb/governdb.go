// Package governdb executes governed entity writes. The four governed tables
// share one structure, so the store is driven by a per-category registry
// instead of four copies of the same SQL.
package governdb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/governbus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/foundation/logger"
)

type table struct {
	name     string
	idColumn string
}

// registry maps each governed category to its table and primary key column.
var registry = map[category.Category]table{
	category.Branch:      {name: `"public"."branch"`, idColumn: "branch_id"},
	category.Employee:    {name: `"public"."employee"`, idColumn: "employee_id"},
	category.Department:  {name: `"public"."department"`, idColumn: "department_id"},
	category.Designation: {name: `"public"."designation"`, idColumn: "designation_id"},
}

// Store manages the set of APIs for governed entity database access.
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

// NewWithTx constructs a new Store value replacing the sqlx DB value with a
// sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (governbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Insert adds a sanitized row to the category's table and returns the store
// issued id. Columns come from the data keys in sorted order so the query
// text is stable for a given payload shape.
func (s *Store) Insert(ctx context.Context, cat category.Category, data map[string]any) (int64, error) {
	tbl, exists := registry[cat]
	if !exists {
		return 0, fmt.Errorf("category %q has no registered table", cat)
	}

	columns := make([]string, 0, len(data))
	for col := range data {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	params := make([]string, len(columns))
	for i, col := range columns {
		params[i] = ":" + col
	}

	q := fmt.Sprintf(`
	INSERT INTO %s
		(%s)
	VALUES
		(%s)
	RETURNING
		%s AS id`,
		tbl.name, strings.Join(columns, ", "), strings.Join(params, ", "), tbl.idColumn)

	var row struct {
		ID int64 `db:"id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.ID, nil
}

// SoftDelete tombstones the row. Rows already deleted or owned by another
// company are not touched and report governbus.ErrNotFound.
func (s *Store) SoftDelete(ctx context.Context, cat category.Category, entityID int64, companyID int64, deletedBy uuid.UUID, note string) error {
	tbl, exists := registry[cat]
	if !exists {
		return fmt.Errorf("category %q has no registered table", cat)
	}

	data := map[string]any{
		"entity_id":   entityID,
		"company_id":  companyID,
		"deleted_at":  time.Now().UTC(),
		"deleted_by":  deletedBy.String(),
		"delete_note": note,
	}

	q := fmt.Sprintf(`
	UPDATE
		%s
	SET
		active = false,
		deleted_at = :deleted_at,
		deleted_by = :deleted_by,
		delete_note = :delete_note,
		date_updated = :deleted_at
	WHERE
		%s = :entity_id AND company_id = :company_id AND deleted_at IS NULL
	RETURNING
		%s AS id`, tbl.name, tbl.idColumn, tbl.idColumn)

	var row struct {
		ID int64 `db:"id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return fmt.Errorf("db: %w", governbus.ErrNotFound)
		}
		return fmt.Errorf("namedquerystruct: %w", err)
	}

	return nil
}

// NameExists probes the company's active rows for a case-insensitive name
// match, optionally excluding one id.
func (s *Store) NameExists(ctx context.Context, cat category.Category, companyID int64, name string, excludeID *int64) (bool, error) {
	tbl, exists := registry[cat]
	if !exists {
		return false, fmt.Errorf("category %q has no registered table", cat)
	}

	data := map[string]any{
		"company_id": companyID,
		"name":       name,
	}

	buf := new(strings.Builder)
	fmt.Fprintf(buf, `
	SELECT
		COUNT(*) AS count
	FROM
		%s
	WHERE
		company_id = :company_id AND LOWER(name) = LOWER(:name) AND deleted_at IS NULL`, tbl.name)

	if excludeID != nil {
		fmt.Fprintf(buf, " AND %s <> :exclude_id", tbl.idColumn)
		data["exclude_id"] = *excludeID
	}

	var row struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &row); err != nil {
		return false, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.Count > 0, nil
}
