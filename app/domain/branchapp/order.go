package branchapp

import (
	"github.com/nexorahq/nexora/business/domain/branchbus"
)

var orderByFields = map[string]string{
	"branch_id": branchbus.OrderByID,
	"name":      branchbus.OrderByName,
	"active":    branchbus.OrderByActive,
}
