// Package profile represents the optional EMS profile attached to a resolved
// tenant scope.
package profile

import "fmt"

// The set of profile kinds.
var (
	Tutor   = newKind("tutor")
	Student = newKind("student")
	Manager = newKind("manager")
)

// Set of known kinds.
var kinds = make(map[string]Kind)

// Kind classifies the EMS profile of a scope.
type Kind struct {
	value string
}

func newKind(kind string) Kind {
	k := Kind{kind}
	kinds[kind] = k
	return k
}

// String returns the name of the kind.
func (k Kind) String() string {
	return k.value
}

// Equal provides support for the go-cmp package and testing.
func (k Kind) Equal(k2 Kind) bool {
	return k.value == k2.value
}

// MarshalText provides support for logging and any marshal needs.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.value), nil
}

// ParseKind parses the string value and returns a kind if one exists.
func ParseKind(value string) (Kind, error) {
	kind, exists := kinds[value]
	if !exists {
		return Kind{}, fmt.Errorf("invalid profile kind %q", value)
	}

	return kind, nil
}

// =============================================================================

// Profile links a resolved scope to the EMS record backing it. Manager class
// profiles carry no record id.
type Profile struct {
	Kind Kind
	ID   int64
}

// Equal provides support for the go-cmp package and testing.
func (p Profile) Equal(p2 Profile) bool {
	return p.Kind.Equal(p2.Kind) && p.ID == p2.ID
}
