package branchdb

import (
	"fmt"

	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/sdk/order"
)

var orderByFields = map[string]string{
	branchbus.OrderByID:     "branch_id",
	branchbus.OrderByName:   "name",
	branchbus.OrderByActive: "active",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
