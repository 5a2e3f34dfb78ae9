package employeedb

import (
	"bytes"
	"strings"

	"github.com/nexorahq/nexora/business/domain/employeebus"
)

func applyFilter(filter employeebus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["employee_id"] = *filter.ID
		wc = append(wc, "employee_id = :employee_id")
	}

	if filter.BranchID != nil {
		data["filter_branch_id"] = *filter.BranchID
		wc = append(wc, "branch_id = :filter_branch_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "email = :email")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "active = :active")
	}

	wc = append(wc, "deleted_at IS NULL")

	buf.WriteString(" WHERE ")
	buf.WriteString(strings.Join(wc, " AND "))
}
