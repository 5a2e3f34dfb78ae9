package branchbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

// Branch represents a physical location of a company.
type Branch struct {
	ID          int64
	CompanyID   int64
	Name        name.Name
	Address     string
	Phone       phone.Null
	Active      bool
	CreatedBy   uuid.UUID
	DateCreated time.Time
	DateUpdated time.Time
	DeletedAt   *time.Time
}

// NewBranch contains the information needed to create a new branch. Ownership
// fields are absent on purpose: the governor stamps them from the scope.
type NewBranch struct {
	Name    name.Name
	Address string
	Phone   phone.Null
}
