package userdb

import (
	"bytes"
	"strings"

	"github.com/nexorahq/nexora/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["user_id"] = filter.ID.String()
		wc = append(wc, "user_id = :user_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "email = :email")
	}

	if filter.StartDateCreated != nil {
		data["start_date_created"] = filter.StartDateCreated.UTC()
		wc = append(wc, "date_created >= :start_date_created")
	}

	if filter.EndDateCreated != nil {
		data["end_date_created"] = filter.EndDateCreated.UTC()
		wc = append(wc, "date_created <= :end_date_created")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
