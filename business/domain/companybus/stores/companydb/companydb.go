// Package companydb contains company related CRUD functionality.
package companydb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for company database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
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

// Create inserts a new company and returns the store issued id.
func (s *Store) Create(ctx context.Context, comp companybus.Company) (int64, error) {
	const q = `
	INSERT INTO "public"."company"
		(name, plan, modules, max_users, max_branches, max_employees,
		 max_departments, max_designations, active, date_created, date_updated)
	VALUES
		(:name, :plan, :modules, :max_users, :max_branches, :max_employees,
		 :max_departments, :max_designations, :active, :date_created, :date_updated)
	RETURNING
		company_id`

	var row struct {
		ID int64 `db:"company_id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBCompany(comp), &row); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return 0, fmt.Errorf("namedquerystruct: %w", companybus.ErrUniqueName)
		}
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.ID, nil
}

// Update replaces a company document in the database.
func (s *Store) Update(ctx context.Context, comp companybus.Company) error {
	const q = `
	UPDATE
		"public"."company"
	SET
		name = :name,
		plan = :plan,
		modules = :modules,
		max_users = :max_users,
		max_branches = :max_branches,
		max_employees = :max_employees,
		max_departments = :max_departments,
		max_designations = :max_designations,
		active = :active,
		deleted_at = :deleted_at,
		deleted_by = :deleted_by,
		delete_note = :delete_note,
		date_updated = :date_updated
	WHERE
		company_id = :company_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCompany(comp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", companybus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified company from the database.
func (s *Store) QueryByID(ctx context.Context, companyID int64) (companybus.Company, error) {
	data := struct {
		ID int64 `db:"company_id"`
	}{
		ID: companyID,
	}

	const q = `
	SELECT
		company_id, name, plan, modules, max_users, max_branches, max_employees,
		max_departments, max_designations, active, date_created, date_updated,
		deleted_at, deleted_by, delete_note
	FROM
		"public"."company"
	WHERE
		company_id = :company_id`

	var dbComp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbComp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbComp)
}
