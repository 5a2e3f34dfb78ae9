package branchapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/branchbus"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

// Branch represents a physical location of a company.
type Branch struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (b Branch) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b)
	return data, "application/json", err
}

func toAppBranch(bus branchbus.Branch) Branch {
	return Branch{
		ID:          bus.ID,
		CompanyID:   bus.CompanyID,
		Name:        bus.Name.String(),
		Address:     bus.Address,
		Phone:       bus.Phone.String(),
		Active:      bus.Active,
		DateCreated: bus.DateCreated.Format(time.RFC3339),
		DateUpdated: bus.DateUpdated.Format(time.RFC3339),
	}
}

func toAppBranches(branches []branchbus.Branch) []Branch {
	app := make([]Branch, len(branches))
	for i, brn := range branches {
		app[i] = toAppBranch(brn)
	}
	return app
}

// =============================================================================

// NewBranch defines the data needed to add a new branch. Ownership comes
// from the caller's scope, never from the payload.
type NewBranch struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Decode implements the web.Decoder interface.
func (app *NewBranch) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewBranch) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewBranch(app NewBranch) (branchbus.NewBranch, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return branchbus.NewBranch{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return branchbus.NewBranch{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := branchbus.NewBranch{
		Name:    nme,
		Address: app.Address,
		Phone:   ph,
	}

	return bus, nil
}

// =============================================================================

// DeleteBranch defines the data needed to soft delete a branch.
type DeleteBranch struct {
	Note string `json:"note" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *DeleteBranch) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app DeleteBranch) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
