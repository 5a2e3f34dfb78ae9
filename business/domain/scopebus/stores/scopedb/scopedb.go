// Package scopedb provides database access for scope resolution.
package scopedb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for scope resolution database access.
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

// QueryActiveAssignments retrieves the active role assignments for the
// specified user with their role rows joined in.
func (s *Store) QueryActiveAssignments(ctx context.Context, userID uuid.UUID) ([]scopebus.RoleAssignment, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		ra.user_id, ra.company_id, ra.branch_id, ra.active,
		r.role_id, r.name, r.level, r.type
	FROM
		"public"."role_assignment" AS ra
	JOIN
		"public"."role" AS r ON r.role_id = ra.role_id
	WHERE
		ra.user_id = :user_id AND ra.active = true`

	var dbAsgs []assignmentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbAsgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusAssignments(dbAsgs)
}

// CreateAssignment inserts a new active role assignment.
func (s *Store) CreateAssignment(ctx context.Context, na scopebus.NewAssignment) error {
	data := struct {
		UserID    string `db:"user_id"`
		RoleID    int    `db:"role_id"`
		CompanyID *int64 `db:"company_id"`
		BranchID  *int64 `db:"branch_id"`
	}{
		UserID:    na.UserID.String(),
		RoleID:    na.RoleID,
		CompanyID: na.CompanyID,
		BranchID:  na.BranchID,
	}

	const q = `
	INSERT INTO "public"."role_assignment"
		(user_id, role_id, company_id, branch_id, active)
	VALUES
		(:user_id, :role_id, :company_id, :branch_id, true)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeactivateAssignments marks every assignment the user holds inactive.
func (s *Store) DeactivateAssignments(ctx context.Context, userID uuid.UUID) error {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	UPDATE
		"public"."role_assignment"
	SET
		active = false
	WHERE
		user_id = :user_id AND active = true`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryEmployeeID retrieves the id of the active employee record linking the
// user to the specified company.
func (s *Store) QueryEmployeeID(ctx context.Context, userID uuid.UUID, companyID int64) (int64, error) {
	data := struct {
		UserID    string `db:"user_id"`
		CompanyID int64  `db:"company_id"`
	}{
		UserID:    userID.String(),
		CompanyID: companyID,
	}

	const q = `
	SELECT
		employee_id AS id
	FROM
		"public"."employee"
	WHERE
		user_id = :user_id AND company_id = :company_id AND deleted_at IS NULL`

	var row profileIDDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.ID, nil
}

// QueryStudentID retrieves the id of the active student record linking the
// user to the specified company.
func (s *Store) QueryStudentID(ctx context.Context, userID uuid.UUID, companyID int64) (int64, error) {
	data := struct {
		UserID    string `db:"user_id"`
		CompanyID int64  `db:"company_id"`
	}{
		UserID:    userID.String(),
		CompanyID: companyID,
	}

	const q = `
	SELECT
		student_id AS id
	FROM
		"public"."student"
	WHERE
		user_id = :user_id AND company_id = :company_id AND deleted_at IS NULL`

	var row profileIDDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", err)
	}

	return row.ID, nil
}
