// Package roleapp exposes the read only role catalog.
package roleapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// Role represents a role in the catalog.
type Role struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Type  string `json:"type"`
}

// Roles is the list of catalog entries.
type Roles []Role

// Encode implements the web.Encoder interface.
func (r Roles) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRoles(roles []rolebus.Role) Roles {
	app := make(Roles, len(roles))
	for i, rle := range roles {
		app[i] = Role{
			ID:    rle.ID,
			Name:  rle.Name,
			Level: rle.Level.Int(),
			Type:  rle.Type,
		}
	}
	return app
}

type app struct {
	roleBus *rolebus.Core
}

func newApp(roleBus *rolebus.Core) *app {
	return &app{
		roleBus: roleBus,
	}
}

// query returns the full role catalog. Roles are reference data; there is
// no tenant dimension to filter on.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	roles, err := a.roleBus.QueryAll(ctx)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "queryall: %s", err)
	}

	return toAppRoles(roles)
}
