package employeeapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

// Employee represents a person employed by a company.
type Employee struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	BranchID    *int64 `json:"branchId,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (e Employee) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func toAppEmployee(bus employeebus.Employee) Employee {
	var userID string
	if bus.UserID != nil {
		userID = bus.UserID.String()
	}

	var email string
	if bus.Email != nil {
		email = bus.Email.Address
	}

	return Employee{
		ID:          bus.ID,
		CompanyID:   bus.CompanyID,
		BranchID:    bus.BranchID,
		UserID:      userID,
		Name:        bus.Name.String(),
		Email:       email,
		Phone:       bus.Phone.String(),
		Active:      bus.Active,
		DateCreated: bus.DateCreated.Format(time.RFC3339),
		DateUpdated: bus.DateUpdated.Format(time.RFC3339),
	}
}

func toAppEmployees(employees []employeebus.Employee) []Employee {
	app := make([]Employee, len(employees))
	for i, emp := range employees {
		app[i] = toAppEmployee(emp)
	}
	return app
}

// =============================================================================

// NewEmployee defines the data needed to add a new employee. When no branch
// is supplied the employee inherits the creating scope's branch.
type NewEmployee struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	BranchID *int64 `json:"branchId"`
	UserID   string `json:"userId" validate:"omitempty,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *NewEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewEmployee(app NewEmployee) (employeebus.NewEmployee, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parse name: %w", err)
	}

	var addr *mail.Address
	if app.Email != "" {
		addr, err = mail.ParseAddress(app.Email)
		if err != nil {
			return employeebus.NewEmployee{}, fmt.Errorf("parse email: %w", err)
		}
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parse phone: %w", err)
	}

	var userID *uuid.UUID
	if app.UserID != "" {
		id, err := uuid.Parse(app.UserID)
		if err != nil {
			return employeebus.NewEmployee{}, fmt.Errorf("parse user id: %w", err)
		}
		userID = &id
	}

	bus := employeebus.NewEmployee{
		Name:     nme,
		Email:    addr,
		Phone:    ph,
		BranchID: app.BranchID,
		UserID:   userID,
	}

	return bus, nil
}

// =============================================================================

// DeleteEmployee defines the data needed to soft delete an employee.
type DeleteEmployee struct {
	Note string `json:"note" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *DeleteEmployee) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app DeleteEmployee) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
