package companybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/plan"
)

// Limits carries the per-category resource ceilings a company's subscription
// grants. A zero in storage decodes to limit.Unlimited.
type Limits struct {
	Users        limit.Limit
	Branches     limit.Limit
	Employees    limit.Limit
	Departments  limit.Limit
	Designations limit.Limit
}

// For returns the quota governing the specified entity category.
func (l Limits) For(cat category.Category) limit.Limit {
	switch cat {
	case category.Branch:
		return l.Branches
	case category.Employee:
		return l.Employees
	case category.Department:
		return l.Departments
	case category.Designation:
		return l.Designations
	}

	return limit.Unlimited
}

// Company represents a tenant and its subscription envelope.
type Company struct {
	ID          int64
	Name        name.Name
	Plan        plan.Plan
	Modules     []module.Module
	Limits      Limits
	Active      bool
	DateCreated time.Time
	DateUpdated time.Time
	DeletedAt   *time.Time
	DeletedBy   *uuid.UUID
	DeleteNote  string
}

// Deleted reports whether the company has been soft deleted.
func (c Company) Deleted() bool {
	return c.DeletedAt != nil
}

// NewCompany contains the information needed to create a new company.
type NewCompany struct {
	Name    name.Name
	Plan    plan.Plan
	Modules []module.Module
	Limits  Limits
}

// UpdateCompany contains the information needed to update a company. Fields
// left nil are not modified.
type UpdateCompany struct {
	Name    *name.Name
	Plan    *plan.Plan
	Modules []module.Module
	Limits  *Limits
}
