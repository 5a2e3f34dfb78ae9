package employeebus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

// Employee represents a person employed by a company, optionally attached to
// a branch and optionally linked to a login user.
type Employee struct {
	ID          int64
	CompanyID   int64
	BranchID    *int64
	UserID      *uuid.UUID
	Name        name.Name
	Email       *mail.Address
	Phone       phone.Null
	Active      bool
	CreatedBy   uuid.UUID
	DateCreated time.Time
	DateUpdated time.Time
	DeletedAt   *time.Time
}

// NewEmployee contains the information needed to create a new employee.
// Company ownership is stamped by the governor; a branch may be supplied
// explicitly or inherited from the creating scope.
type NewEmployee struct {
	Name     name.Name
	Email    *mail.Address
	Phone    phone.Null
	BranchID *int64
	UserID   *uuid.UUID
}
