package employeebus

import "github.com/nexorahq/nexora/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID     = "employee_id"
	OrderByName   = "name"
	OrderByBranch = "branch_id"
	OrderByActive = "active"
)
