package employeedb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

type employeeDB struct {
	ID          int64          `db:"employee_id"`
	CompanyID   int64          `db:"company_id"`
	BranchID    sql.NullInt64  `db:"branch_id"`
	UserID      sql.NullString `db:"user_id"`
	Name        string         `db:"name"`
	Email       sql.NullString `db:"email"`
	Phone       sql.NullString `db:"phone"`
	Active      bool           `db:"active"`
	CreatedBy   string         `db:"created_by"`
	DateCreated time.Time      `db:"date_created"`
	DateUpdated time.Time      `db:"date_updated"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func toBusEmployee(db employeeDB) (employeebus.Employee, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return employeebus.Employee{}, fmt.Errorf("parse name: %w", err)
	}

	createdBy, err := uuid.Parse(db.CreatedBy)
	if err != nil {
		return employeebus.Employee{}, fmt.Errorf("parse created_by: %w", err)
	}

	bus := employeebus.Employee{
		ID:          db.ID,
		CompanyID:   db.CompanyID,
		Name:        nme,
		Active:      db.Active,
		CreatedBy:   createdBy,
		DateCreated: db.DateCreated.In(time.Local),
		DateUpdated: db.DateUpdated.In(time.Local),
	}

	if db.BranchID.Valid {
		branchID := db.BranchID.Int64
		bus.BranchID = &branchID
	}

	if db.UserID.Valid {
		userID, err := uuid.Parse(db.UserID.String)
		if err != nil {
			return employeebus.Employee{}, fmt.Errorf("parse user_id: %w", err)
		}
		bus.UserID = &userID
	}

	if db.Email.Valid {
		addr, err := mail.ParseAddress(db.Email.String)
		if err != nil {
			return employeebus.Employee{}, fmt.Errorf("parse email: %w", err)
		}
		bus.Email = addr
	}

	if db.Phone.Valid {
		ph, err := phone.ParseNull(db.Phone.String)
		if err != nil {
			return employeebus.Employee{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = ph
	}

	if db.DeletedAt.Valid {
		t := db.DeletedAt.Time.In(time.Local)
		bus.DeletedAt = &t
	}

	return bus, nil
}

func toBusEmployees(dbs []employeeDB) ([]employeebus.Employee, error) {
	bus := make([]employeebus.Employee, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusEmployee(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
