package rolebus

import (
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

// Role represents a role in the catalog. Roles are immutable reference data;
// many roles can share one level.
type Role struct {
	ID    int
	Name  string
	Level rolelevel.Level
	Type  string
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.ID == r2.ID &&
		r.Name == r2.Name &&
		r.Level.Equal(r2.Level) &&
		r.Type == r2.Type
}
