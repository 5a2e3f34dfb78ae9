package branchdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

type branchDB struct {
	ID          int64          `db:"branch_id"`
	CompanyID   int64          `db:"company_id"`
	Name        string         `db:"name"`
	Address     sql.NullString `db:"address"`
	Phone       sql.NullString `db:"phone"`
	Active      bool           `db:"active"`
	CreatedBy   string         `db:"created_by"`
	DateCreated time.Time      `db:"date_created"`
	DateUpdated time.Time      `db:"date_updated"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func toBusBranch(db branchDB) (branchbus.Branch, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return branchbus.Branch{}, fmt.Errorf("parse name: %w", err)
	}

	createdBy, err := uuid.Parse(db.CreatedBy)
	if err != nil {
		return branchbus.Branch{}, fmt.Errorf("parse created_by: %w", err)
	}

	bus := branchbus.Branch{
		ID:          db.ID,
		CompanyID:   db.CompanyID,
		Name:        nme,
		Active:      db.Active,
		CreatedBy:   createdBy,
		DateCreated: db.DateCreated.In(time.Local),
		DateUpdated: db.DateUpdated.In(time.Local),
	}

	if db.Address.Valid {
		bus.Address = db.Address.String
	}

	if db.Phone.Valid {
		ph, err := phone.ParseNull(db.Phone.String)
		if err != nil {
			return branchbus.Branch{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = ph
	}

	if db.DeletedAt.Valid {
		t := db.DeletedAt.Time.In(time.Local)
		bus.DeletedAt = &t
	}

	return bus, nil
}

func toBusBranches(dbs []branchDB) ([]branchbus.Branch, error) {
	bus := make([]branchbus.Branch, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusBranch(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
