// Package rolelevel represents the authority level of a role. Levels form a
// total order: 0 ordinary user, 1 branch admin, 4 company admin, 5 platform
// admin. Many roles can share one level.
package rolelevel

import "fmt"

// The set of well known levels.
var (
	User         = Level{0}
	BranchAdmin  = Level{1}
	CompanyAdmin = Level{4}
	Platform     = Level{5}
)

// Level represents the authority level of a role.
type Level struct {
	value int
}

// Parse validates the integer value and returns a level.
func Parse(value int) (Level, error) {
	if value < 0 {
		return Level{}, fmt.Errorf("invalid role level %d", value)
	}

	return Level{value}, nil
}

// MustParse validates the integer value and returns a level. If an error
// occurs the function panics.
func MustParse(value int) Level {
	level, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return level
}

// Int returns the numeric value of the level.
func (l Level) Int() int {
	return l.value
}

// IsPlatform reports whether the level grants cross-tenant authority.
func (l Level) IsPlatform() bool {
	return l.value >= Platform.value
}

// IsCompanyAdmin reports whether the level grants company-wide authority.
func (l Level) IsCompanyAdmin() bool {
	return l.value >= CompanyAdmin.value
}

// AtLeast reports whether the level is greater than or equal to the other.
func (l Level) AtLeast(other Level) bool {
	return l.value >= other.value
}

// Compare returns -1, 0 or 1 ordering two levels.
func (l Level) Compare(other Level) int {
	switch {
	case l.value < other.value:
		return -1
	case l.value > other.value:
		return 1
	}
	return 0
}

// String implements the stringer interface.
func (l Level) String() string {
	return fmt.Sprintf("%d", l.value)
}

// Equal provides support for the go-cmp package and testing.
func (l Level) Equal(l2 Level) bool {
	return l.value == l2.value
}

// MarshalText provides support for logging and any marshal needs.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
