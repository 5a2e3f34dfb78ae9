package employeeapp

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/employeebus"
	"github.com/nexorahq/nexora/business/types/name"
)

type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	BranchID string
	Name     string
	Email    string
	Active   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("employee_id"),
		BranchID: values.Get("branch_id"),
		Name:     values.Get("name"),
		Email:    values.Get("email"),
		Active:   values.Get("active"),
	}
}

func parseFilter(qp queryParams) (employeebus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter employeebus.QueryFilter

	if qp.ID != "" {
		id, err := strconv.ParseInt(qp.ID, 10, 64)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("employee_id", err)
		}
	}

	if qp.BranchID != "" {
		id, err := strconv.ParseInt(qp.BranchID, 10, 64)
		switch err {
		case nil:
			filter.BranchID = &id
		default:
			fieldErrors.Add("branch_id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if qp.Email != "" {
		addr, err := mail.ParseAddress(qp.Email)
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if qp.Active != "" {
		active, err := strconv.ParseBool(qp.Active)
		switch err {
		case nil:
			filter.Active = &active
		default:
			fieldErrors.Add("active", err)
		}
	}

	if fieldErrors != nil {
		return employeebus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
