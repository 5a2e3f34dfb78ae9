// Package menudb contains menu related query functionality.
package menudb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for menu database access.
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

// QueryMenus retrieves all active menu entries in display order.
func (s *Store) QueryMenus(ctx context.Context) ([]featurebus.Menu, error) {
	data := map[string]any{}

	const q = `
	SELECT
		menu_id, name, path, icon, module, position
	FROM
		"public"."menu"
	WHERE
		active = true
	ORDER BY
		position ASC, menu_id ASC`

	var dbMenus []menuDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbMenus); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMenus(dbMenus)
}

// QueryCompanyMenuIDs retrieves the company's menu allow list. An empty
// result means the company carries no explicit allow list.
func (s *Store) QueryCompanyMenuIDs(ctx context.Context, companyID int64) ([]int64, error) {
	data := struct {
		CompanyID int64 `db:"company_id"`
	}{
		CompanyID: companyID,
	}

	const q = `
	SELECT
		menu_id
	FROM
		"public"."company_menu"
	WHERE
		company_id = :company_id`

	var rows []struct {
		MenuID int64 `db:"menu_id"`
	}
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.MenuID
	}

	return ids, nil
}
