// Package module represents a subscription feature module in the system.
package module

import "fmt"

// The set of modules that can be gated by a subscription.
var (
	Core       = newModule("CORE")
	HR         = newModule("HR")
	Attendance = newModule("ATTENDANCE")
	Payroll    = newModule("PAYROLL")
	CRM        = newModule("CRM")
	LMS        = newModule("LMS")
	Finance    = newModule("FINANCE")
	Inventory  = newModule("INVENTORY")
)

// =============================================================================

// Set of known modules.
var modules = make(map[string]Module)

// Module represents a feature module in the system.
type Module struct {
	value string
}

func newModule(module string) Module {
	m := Module{module}
	modules[module] = m
	return m
}

// String returns the name of the module.
func (m Module) String() string {
	return m.value
}

// Equal provides support for the go-cmp package and testing.
func (m Module) Equal(m2 Module) bool {
	return m.value == m2.value
}

// MarshalText provides support for logging and any marshal needs.
func (m Module) MarshalText() ([]byte, error) {
	return []byte(m.value), nil
}

// =============================================================================

// Parse parses the string value and returns a module if one exists.
func Parse(value string) (Module, error) {
	module, exists := modules[value]
	if !exists {
		return Module{}, fmt.Errorf("invalid module %q", value)
	}

	return module, nil
}

// MustParse parses the string value and returns a module if one exists. If
// an error occurs the function panics.
func MustParse(value string) Module {
	module, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return module
}

// ParseSet parses a list of module names, rejecting the first invalid value.
func ParseSet(values []string) ([]Module, error) {
	set := make([]Module, len(values))
	for i, v := range values {
		var err error
		set[i], err = Parse(v)
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}
