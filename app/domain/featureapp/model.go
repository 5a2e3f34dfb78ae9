package featureapp

import (
	"encoding/json"

	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/limitbus"
)

// Limits carries the per-category ceilings of the subscription. Zero means
// unlimited.
type Limits struct {
	Users        int `json:"users"`
	Branches     int `json:"branches"`
	Employees    int `json:"employees"`
	Departments  int `json:"departments"`
	Designations int `json:"designations"`
}

// Access is the feature view returned to the caller: what the subscription
// enables under the resolved scope.
type Access struct {
	Platform bool     `json:"platform"`
	Plan     string   `json:"plan,omitempty"`
	Modules  []string `json:"modules"`
	Limits   Limits   `json:"limits"`
}

// Encode implements the web.Encoder interface.
func (a Access) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}

func toAppAccess(bus featurebus.Access) Access {
	mods := make([]string, len(bus.Modules))
	for i, m := range bus.Modules {
		mods[i] = m.String()
	}

	app := Access{
		Platform: bus.IsPlatform(),
		Modules:  mods,
		Limits: Limits{
			Users:        bus.Limits.Users.Encode(),
			Branches:     bus.Limits.Branches.Encode(),
			Employees:    bus.Limits.Employees.Encode(),
			Departments:  bus.Limits.Departments.Encode(),
			Designations: bus.Limits.Designations.Encode(),
		},
	}

	if !bus.IsPlatform() {
		app.Plan = bus.Plan.String()
	}

	return app
}

// =============================================================================

// Menu represents a navigable menu entry visible to the caller.
type Menu struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Icon     string `json:"icon,omitempty"`
	Module   string `json:"module"`
	Position int    `json:"position"`
}

// Menus is the display ordered list of accessible menu entries.
type Menus []Menu

// Encode implements the web.Encoder interface.
func (m Menus) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMenus(menus []featurebus.Menu) Menus {
	app := make(Menus, len(menus))
	for i, menu := range menus {
		app[i] = Menu{
			ID:       menu.ID,
			Name:     menu.Name,
			Path:     menu.Path,
			Icon:     menu.Icon,
			Module:   menu.Module.String(),
			Position: menu.Position,
		}
	}
	return app
}

// =============================================================================

// Admission reports whether the scope may create one more entity of a
// category, and how much headroom remains.
type Admission struct {
	Allowed   bool   `json:"allowed"`
	Category  string `json:"category"`
	Current   int    `json:"current"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message,omitempty"`
}

// Encode implements the web.Encoder interface.
func (a Admission) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}

func toAppAdmission(d limitbus.Decision) Admission {
	return Admission{
		Allowed:   d.Allowed,
		Category:  d.Category.String(),
		Current:   d.Current,
		Limit:     d.Limit.Encode(),
		Remaining: d.Remaining,
		Message:   d.Message,
	}
}
