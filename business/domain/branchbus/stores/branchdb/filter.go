package branchdb

import (
	"bytes"
	"strings"

	"github.com/nexorahq/nexora/business/domain/branchbus"
)

func applyFilter(filter branchbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["branch_id"] = *filter.ID
		wc = append(wc, "branch_id = :branch_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "active = :active")
	}

	wc = append(wc, "deleted_at IS NULL")

	buf.WriteString(" WHERE ")
	buf.WriteString(strings.Join(wc, " AND "))
}
