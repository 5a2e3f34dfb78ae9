package employeebus

import (
	"net/mail"

	"github.com/nexorahq/nexora/business/types/name"
)

// QueryFilter holds the available fields a query can be filtered on. Tenant
// isolation is not part of the filter; the store applies it from the scope.
type QueryFilter struct {
	ID       *int64
	BranchID *int64
	Name     *name.Name
	Email    *mail.Address
	Active   *bool
}
