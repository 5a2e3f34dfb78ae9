package employeedb

import (
	"fmt"

	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/sdk/order"
)

var orderByFields = map[string]string{
	employeebus.OrderByID:     "employee_id",
	employeebus.OrderByName:   "name",
	employeebus.OrderByBranch: "branch_id",
	employeebus.OrderByActive: "active",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
