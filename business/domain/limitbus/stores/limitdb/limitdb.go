// Package limitdb provides the active entity counts quota checks run on.
package limitdb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/foundation/logger"
)

// tables maps each governed category to the table its rows live in. Counts
// exclude soft deleted rows: a removed entity frees its quota slot even
// though the row remains.
var tables = map[category.Category]string{
	category.Branch:      `"public"."branch"`,
	category.Employee:    `"public"."employee"`,
	category.Department:  `"public"."department"`,
	category.Designation: `"public"."designation"`,
}

// Store manages the set of APIs for quota count database access.
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

// CountActive returns the number of non-deleted rows the company holds in
// the category's table.
func (s *Store) CountActive(ctx context.Context, companyID int64, cat category.Category) (int, error) {
	table, exists := tables[cat]
	if !exists {
		return 0, fmt.Errorf("category %q has no registered table", cat)
	}

	data := struct {
		CompanyID int64 `db:"company_id"`
	}{
		CompanyID: companyID,
	}

	q := fmt.Sprintf(`
	SELECT
		COUNT(*) AS count
	FROM
		%s
	WHERE
		company_id = :company_id AND deleted_at IS NULL`, table)

	var row struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.Count, nil
}
