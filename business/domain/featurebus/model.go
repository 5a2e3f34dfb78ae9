package featurebus

import (
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/plan"
)

// Access is the feature view a resolved scope gets: which modules the
// subscription enables, under which plan, and the raw quota envelope. A
// platform operator outside any company sees every module.
type Access struct {
	Plan     plan.Plan
	Modules  []module.Module
	Limits   companybus.Limits
	platform bool
}

// IsPlatform reports whether the view belongs to an unscoped platform
// operator, for whom every module and menu is visible.
func (a Access) IsPlatform() bool {
	return a.platform
}

// HasModule reports whether the module is enabled for the scope.
func (a Access) HasModule(m module.Module) bool {
	if a.platform {
		return true
	}

	for _, enabled := range a.Modules {
		if enabled.Equal(m) {
			return true
		}
	}

	return false
}

// HasAnyModule reports whether at least one of the modules is enabled.
func (a Access) HasAnyModule(mods ...module.Module) bool {
	for _, m := range mods {
		if a.HasModule(m) {
			return true
		}
	}

	return false
}

// HasAllModules reports whether every one of the modules is enabled.
func (a Access) HasAllModules(mods ...module.Module) bool {
	for _, m := range mods {
		if !a.HasModule(m) {
			return false
		}
	}

	return true
}

// Menu represents a navigable menu entry gated by a module.
type Menu struct {
	ID       int64
	Name     string
	Path     string
	Icon     string
	Module   module.Module
	Position int
}
