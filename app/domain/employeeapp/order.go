package employeeapp

import (
	"github.com/nexorahq/nexora/business/domain/employeebus"
)

var orderByFields = map[string]string{
	"employee_id": employeebus.OrderByID,
	"name":        employeebus.OrderByName,
	"branch_id":   employeebus.OrderByBranch,
	"active":      employeebus.OrderByActive,
}
