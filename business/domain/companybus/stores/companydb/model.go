package companydb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/sdk/sqldb/dbarray"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/plan"
)

type companyDB struct {
	ID              int64          `db:"company_id"`
	Name            string         `db:"name"`
	Plan            string         `db:"plan"`
	Modules         dbarray.String `db:"modules"`
	MaxUsers        int            `db:"max_users"`
	MaxBranches     int            `db:"max_branches"`
	MaxEmployees    int            `db:"max_employees"`
	MaxDepartments  int            `db:"max_departments"`
	MaxDesignations int            `db:"max_designations"`
	Active          bool           `db:"active"`
	DateCreated     time.Time      `db:"date_created"`
	DateUpdated     time.Time      `db:"date_updated"`
	DeletedAt       sql.NullTime   `db:"deleted_at"`
	DeletedBy       sql.NullString `db:"deleted_by"`
	DeleteNote      sql.NullString `db:"delete_note"`
}

func toDBCompany(bus companybus.Company) companyDB {
	db := companyDB{
		ID:              bus.ID,
		Name:            bus.Name.String(),
		Plan:            bus.Plan.String(),
		Modules:         make(dbarray.String, len(bus.Modules)),
		MaxUsers:        bus.Limits.Users.Encode(),
		MaxBranches:     bus.Limits.Branches.Encode(),
		MaxEmployees:    bus.Limits.Employees.Encode(),
		MaxDepartments:  bus.Limits.Departments.Encode(),
		MaxDesignations: bus.Limits.Designations.Encode(),
		Active:          bus.Active,
		DateCreated:     bus.DateCreated.UTC(),
		DateUpdated:     bus.DateUpdated.UTC(),
	}

	for i, m := range bus.Modules {
		db.Modules[i] = m.String()
	}

	if bus.DeletedAt != nil {
		db.DeletedAt = sql.NullTime{Time: bus.DeletedAt.UTC(), Valid: true}
	}

	if bus.DeletedBy != nil {
		db.DeletedBy = sql.NullString{String: bus.DeletedBy.String(), Valid: true}
	}

	if bus.DeleteNote != "" {
		db.DeleteNote = sql.NullString{String: bus.DeleteNote, Valid: true}
	}

	return db
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	pln, err := plan.Parse(db.Plan)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse plan: %w", err)
	}

	mods, err := module.ParseSet(db.Modules)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse modules: %w", err)
	}

	limits, err := toBusLimits(db)
	if err != nil {
		return companybus.Company{}, err
	}

	bus := companybus.Company{
		ID:          db.ID,
		Name:        nme,
		Plan:        pln,
		Modules:     mods,
		Limits:      limits,
		Active:      db.Active,
		DateCreated: db.DateCreated.In(time.Local),
		DateUpdated: db.DateUpdated.In(time.Local),
	}

	if db.DeletedAt.Valid {
		t := db.DeletedAt.Time.In(time.Local)
		bus.DeletedAt = &t
	}

	if db.DeletedBy.Valid {
		id, err := uuid.Parse(db.DeletedBy.String)
		if err != nil {
			return companybus.Company{}, fmt.Errorf("parse deleted_by: %w", err)
		}
		bus.DeletedBy = &id
	}

	if db.DeleteNote.Valid {
		bus.DeleteNote = db.DeleteNote.String
	}

	return bus, nil
}

func toBusLimits(db companyDB) (companybus.Limits, error) {
	var limits companybus.Limits

	for _, f := range []struct {
		column string
		value  int
		dst    *limit.Limit
	}{
		{"max_users", db.MaxUsers, &limits.Users},
		{"max_branches", db.MaxBranches, &limits.Branches},
		{"max_employees", db.MaxEmployees, &limits.Employees},
		{"max_departments", db.MaxDepartments, &limits.Departments},
		{"max_designations", db.MaxDesignations, &limits.Designations},
	} {
		l, err := limit.Parse(f.value)
		if err != nil {
			return companybus.Limits{}, fmt.Errorf("parse %s: %w", f.column, err)
		}
		*f.dst = l
	}

	return limits, nil
}
