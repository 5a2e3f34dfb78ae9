// Package roledb contains role catalog related CRUD functionality.
package roledb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for role catalog database access.
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

// QueryAll retrieves the full role catalog from the database.
func (s *Store) QueryAll(ctx context.Context) ([]rolebus.Role, error) {
	data := map[string]any{}

	const q = `
	SELECT
		role_id, name, level, type
	FROM
		"public"."role"
	ORDER BY
		level DESC, role_id ASC`

	var dbRoles []roleDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbRoles); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRoles(dbRoles)
}

// QueryByID gets the specified role from the database.
func (s *Store) QueryByID(ctx context.Context, roleID int) (rolebus.Role, error) {
	data := struct {
		ID int `db:"role_id"`
	}{
		ID: roleID,
	}

	const q = `
	SELECT
		role_id, name, level, type
	FROM
		"public"."role"
	WHERE
		role_id = :role_id`

	var dbRole roleDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbRole); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return rolebus.Role{}, fmt.Errorf("db: %w", rolebus.ErrNotFound)
		}
		return rolebus.Role{}, fmt.Errorf("db: %w", err)
	}

	return toBusRole(dbRole)
}
