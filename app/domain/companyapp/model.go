package companyapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/plan"
)

// Limits carries the per-category ceilings of a subscription. Zero means
// unlimited.
type Limits struct {
	Users        int `json:"users" validate:"gte=0"`
	Branches     int `json:"branches" validate:"gte=0"`
	Employees    int `json:"employees" validate:"gte=0"`
	Departments  int `json:"departments" validate:"gte=0"`
	Designations int `json:"designations" validate:"gte=0"`
}

func toAppLimits(bus companybus.Limits) Limits {
	return Limits{
		Users:        bus.Users.Encode(),
		Branches:     bus.Branches.Encode(),
		Employees:    bus.Employees.Encode(),
		Departments:  bus.Departments.Encode(),
		Designations: bus.Designations.Encode(),
	}
}

func toBusLimits(app Limits) (companybus.Limits, error) {
	var bus companybus.Limits

	fields := []struct {
		name  string
		value int
		dst   *limit.Limit
	}{
		{"users", app.Users, &bus.Users},
		{"branches", app.Branches, &bus.Branches},
		{"employees", app.Employees, &bus.Employees},
		{"departments", app.Departments, &bus.Departments},
		{"designations", app.Designations, &bus.Designations},
	}

	for _, f := range fields {
		lim, err := limit.Parse(f.value)
		if err != nil {
			return companybus.Limits{}, fmt.Errorf("parse %s limit: %w", f.name, err)
		}
		*f.dst = lim
	}

	return bus, nil
}

// Company represents a tenant and its subscription envelope.
type Company struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Plan        string   `json:"plan"`
	Modules     []string `json:"modules"`
	Limits      Limits   `json:"limits"`
	Active      bool     `json:"active"`
	DateCreated string   `json:"dateCreated"`
	DateUpdated string   `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCompany(bus companybus.Company) Company {
	mods := make([]string, len(bus.Modules))
	for i, m := range bus.Modules {
		mods[i] = m.String()
	}

	return Company{
		ID:          bus.ID,
		Name:        bus.Name.String(),
		Plan:        bus.Plan.String(),
		Modules:     mods,
		Limits:      toAppLimits(bus.Limits),
		Active:      bus.Active,
		DateCreated: bus.DateCreated.Format(time.RFC3339),
		DateUpdated: bus.DateUpdated.Format(time.RFC3339),
	}
}

// =============================================================================

// NewCompany defines the data needed to onboard a new tenant.
type NewCompany struct {
	Name    string   `json:"name" validate:"required"`
	Plan    string   `json:"plan" validate:"required"`
	Modules []string `json:"modules" validate:"required,min=1"`
	Limits  Limits   `json:"limits"`
}

// Decode implements the web.Decoder interface.
func (app *NewCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app NewCompany) (companybus.NewCompany, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse name: %w", err)
	}

	pln, err := plan.Parse(app.Plan)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse plan: %w", err)
	}

	mods, err := module.ParseSet(app.Modules)
	if err != nil {
		return companybus.NewCompany{}, fmt.Errorf("parse modules: %w", err)
	}

	limits, err := toBusLimits(app.Limits)
	if err != nil {
		return companybus.NewCompany{}, err
	}

	bus := companybus.NewCompany{
		Name:    nme,
		Plan:    pln,
		Modules: mods,
		Limits:  limits,
	}

	return bus, nil
}

// =============================================================================

// UpdateCompany defines the data needed to change a tenant's subscription.
type UpdateCompany struct {
	Name    *string  `json:"name"`
	Plan    *string  `json:"plan"`
	Modules []string `json:"modules"`
	Limits  *Limits  `json:"limits"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	var bus companybus.UpdateCompany

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Plan != nil {
		pln, err := plan.Parse(*app.Plan)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse plan: %w", err)
		}
		bus.Plan = &pln
	}

	if app.Modules != nil {
		mods, err := module.ParseSet(app.Modules)
		if err != nil {
			return companybus.UpdateCompany{}, fmt.Errorf("parse modules: %w", err)
		}
		bus.Modules = mods
	}

	if app.Limits != nil {
		limits, err := toBusLimits(*app.Limits)
		if err != nil {
			return companybus.UpdateCompany{}, err
		}
		bus.Limits = &limits
	}

	return bus, nil
}

// =============================================================================

// DeleteCompany defines the data needed to soft delete a tenant.
type DeleteCompany struct {
	Note string `json:"note" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *DeleteCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app DeleteCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
