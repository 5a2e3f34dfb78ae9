package scopedb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

type assignmentDB struct {
	UserID    uuid.UUID     `db:"user_id"`
	CompanyID sql.NullInt64 `db:"company_id"`
	BranchID  sql.NullInt64 `db:"branch_id"`
	Active    bool          `db:"active"`
	RoleID    int           `db:"role_id"`
	RoleName  string        `db:"name"`
	RoleLevel int           `db:"level"`
	RoleType  string        `db:"type"`
}

type profileIDDB struct {
	ID int64 `db:"id"`
}

func toBusAssignment(db assignmentDB) (scopebus.RoleAssignment, error) {
	level, err := rolelevel.Parse(db.RoleLevel)
	if err != nil {
		return scopebus.RoleAssignment{}, fmt.Errorf("parse level: %w", err)
	}

	asg := scopebus.RoleAssignment{
		UserID: db.UserID,
		Role: rolebus.Role{
			ID:    db.RoleID,
			Name:  db.RoleName,
			Level: level,
			Type:  db.RoleType,
		},
		Active: db.Active,
	}

	if db.CompanyID.Valid {
		companyID := db.CompanyID.Int64
		asg.CompanyID = &companyID
	}

	if db.BranchID.Valid {
		branchID := db.BranchID.Int64
		asg.BranchID = &branchID
	}

	return asg, nil
}

func toBusAssignments(dbs []assignmentDB) ([]scopebus.RoleAssignment, error) {
	bus := make([]scopebus.RoleAssignment, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusAssignment(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
